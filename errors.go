package treecmp

import "errors"

// Sentinel errors for model and token operations. Programmer errors
// (empty IDs, unchained lifecycle hooks, duplicate children) panic
// instead; these errors cover conditions that depend on runtime data.
var (
	ErrMissingResource   = errors.New("treecmp: resource not found")
	ErrReadOnly          = errors.New("treecmp: model is read-only")
	ErrTypeMismatch      = errors.New("treecmp: model value type mismatch")
	ErrComponentNotFound = errors.New("treecmp: component not found")
	ErrInvalidToken      = errors.New("treecmp: invalid refresh token")
	ErrSignatureInvalid  = errors.New("treecmp: token signature verification failed")
	ErrDecryptFailed     = errors.New("treecmp: token decryption failed")
)

// IsMissingResource checks if err means a resource key had no bundle entry
// and no default.
func IsMissingResource(err error) bool {
	return errors.Is(err, ErrMissingResource)
}

// IsReadOnly checks if err means a derived model rejected a mutation.
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrReadOnly)
}

// IsTokenError checks if err is any refresh-token decoding failure.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}
