// Package mocks holds the hand-rolled mocks shared by tests in other
// packages: the auth surfaces (MockJWTService, MockPasswordVerifier,
// the user store mocks) and the service interfaces the HTTP handlers
// depend on (MockEnrollmentService, MockProgressService,
// MockUserService).
//
// Each mock follows one of two shapes. Fn-field mocks return canned
// values until a test sets the function field for a method:
//
//	jwtService := &mocks.MockJWTService{Token: "issued-token"}
//
// Call-tracking mocks (MockEnrollmentService and friends) record the
// arguments of each call so tests can assert on what the handler sent,
// and are configured through option functions on their constructors.
//
// Mocks used by exactly one package stay next to their consumer; a mock
// moves here once a second package needs it.
package mocks
