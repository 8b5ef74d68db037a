package treecmp

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"missing resource", ErrMissingResource, IsMissingResource, true},
		{"wrapped missing resource", fmt.Errorf("lookup: %w", ErrMissingResource), IsMissingResource, true},
		{"read only", ErrReadOnly, IsReadOnly, true},
		{"invalid token", ErrInvalidToken, IsTokenError, true},
		{"bad signature", ErrSignatureInvalid, IsTokenError, true},
		{"decrypt failure", ErrDecryptFailed, IsTokenError, true},
		{"unrelated", fmt.Errorf("boom"), IsTokenError, false},
		{"nil", nil, IsMissingResource, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %t, want %t", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorsCarryPackagePrefix(t *testing.T) {
	for _, err := range []error{
		ErrMissingResource, ErrReadOnly, ErrTypeMismatch,
		ErrComponentNotFound, ErrInvalidToken, ErrSignatureInvalid, ErrDecryptFailed,
	} {
		if !strings.HasPrefix(err.Error(), "treecmp:") {
			t.Errorf("error %q lacks the package prefix", err)
		}
	}
}
