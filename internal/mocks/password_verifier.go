package mocks

import "errors"

// ErrPasswordMismatch is what MockPasswordVerifier returns when told
// to fail, mirroring bcrypt's mismatch error shape for callers that
// only check non-nil.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier with a fixed
// outcome. Login handler tests flip ShouldSucceed per case instead of
// minting real bcrypt hashes.
type MockPasswordVerifier struct {
	ShouldSucceed bool
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}
