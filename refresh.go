package treecmp

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/pthm/treecmp/lib/codec"
)

// refreshPayload is the token body naming a component across requests.
type refreshPayload struct {
	Path   string `msgpack:"p"`
	Locale string `msgpack:"l,omitempty"`
}

// RefreshToken encodes a reference to a component — its path and
// effective locale — into a tamper-proof token that survives a request
// boundary. Pass sensitive to encrypt the token instead of signing it.
//
// The token carries only the reference, never component state; the
// server-held tree remains the source of truth.
func RefreshToken(cdc *codec.Codec, c Component, sensitive bool) (string, error) {
	payload := refreshPayload{
		Path:   c.Path(),
		Locale: LocaleOf(c).String(),
	}
	return cdc.Encode(payload, sensitive)
}

// ResolveRefresh verifies a refresh token and resolves it to a component
// in the tree rooted at root. The component's locale is restored from the
// token when the tree does not override it.
//
// Fails with a token error (see IsTokenError) for tampered or malformed
// tokens and with ErrComponentNotFound when the referenced component no
// longer exists.
func ResolveRefresh(cdc *codec.Codec, root Component, token string, sensitive bool) (Component, error) {
	var payload refreshPayload
	if err := cdc.Decode(token, sensitive, &payload); err != nil {
		return nil, wrapCodecError(err)
	}

	c, ok := findByPath(root, payload.Path)
	if !ok {
		return nil, fmt.Errorf("%w: path %q", ErrComponentNotFound, payload.Path)
	}

	if payload.Locale != "" && c.base().locale == language.Und {
		if tag, err := language.Parse(payload.Locale); err == nil {
			c.base().SetLocale(tag)
		}
	}
	return c, nil
}

func findByPath(root Component, path string) (Component, bool) {
	rootPath := root.Path()
	if path == rootPath {
		return root, true
	}
	rel, ok := strings.CutPrefix(path, rootPath+":")
	if !ok {
		return nil, false
	}
	return root.base().Find(rel)
}

// wrapCodecError maps codec sentinel errors onto the package's own.
func wrapCodecError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, codec.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, codec.ErrDecryptFailed):
		return fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	case errors.Is(err, codec.ErrInvalidFormat):
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return err
}
