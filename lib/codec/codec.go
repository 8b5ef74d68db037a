// Package codec signs or encrypts small msgpack payloads so they can round
// trip safely through URLs and form fields.
//
// Two modes are supported:
//   - Signed (default): base64 msgpack + HMAC-SHA256 signature. The payload
//     is visible but tamper-proof, which keeps tokens debuggable.
//   - Sensitive: AES-256-GCM. The payload is completely opaque to clients.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors for token decoding.
var (
	ErrInvalidFormat    = errors.New("codec: invalid token format")
	ErrSignatureInvalid = errors.New("codec: signature verification failed")
	ErrDecryptFailed    = errors.New("codec: decryption failed")
)

// sigLen is the number of HMAC bytes appended to signed tokens.
const sigLen = 16

// Codec encodes and decodes token payloads with a single symmetric key.
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// New creates a codec from the given key. Keys shorter than 32 bytes are
// stretched to 32 bytes with SHA-256 so AES-256 always applies.
func New(key []byte) (*Codec, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode serializes v with msgpack and returns a token string. Sensitive
// payloads are encrypted, all others are signed.
func (c *Codec) Encode(v any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", err
	}
	if sensitive {
		return c.encrypt(packed)
	}
	return c.sign(packed), nil
}

// Decode verifies (or decrypts) a token and unmarshals the payload into v.
// The sensitive flag must match the one used at encode time.
func (c *Codec) Decode(token string, sensitive bool, v any) error {
	var packed []byte
	var err error
	if sensitive {
		packed, err = c.decrypt(token)
	} else {
		packed, err = c.verify(token)
	}
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// sign produces a visible, tamper-proof encoding: payload.signature
func (c *Codec) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:sigLen])
	return b64 + "." + sig
}

// verify checks the signature and returns the raw payload.
func (c *Codec) verify(token string) ([]byte, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:sigLen]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

// encrypt produces an opaque encoding using AES-256-GCM.
func (c *Codec) encrypt(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ciphertext := c.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt decodes and decrypts an opaque token.
func (c *Codec) decrypt(token string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(ciphertext) < c.gcm.NonceSize() {
		return nil, fmt.Errorf("%w: token too short", ErrInvalidFormat)
	}

	nonce := ciphertext[:c.gcm.NonceSize()]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext[c.gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}
