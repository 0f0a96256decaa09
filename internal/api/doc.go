// Package api exposes the HTTP surface: auth, user profile, program
// catalog, enrollment, and progress endpoints. Handlers decode and
// validate requests, call into the service layer, and map service and
// domain errors onto HTTP status codes; no business rules live here.
package api
