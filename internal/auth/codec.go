package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"senti/internal/model"
)

// IdentityCodec serializes the persisted session record.
// Decode fails on anything that is not a complete, valid Identity.
type IdentityCodec interface {
	Encode(identity *model.Identity) ([]byte, error)
	Decode(data []byte) (*model.Identity, error)
}

// JSONCodec stores the identity as a plain JSON object.
type JSONCodec struct{}

var _ IdentityCodec = JSONCodec{}

// Encode marshals the identity.
func (JSONCodec) Encode(identity *model.Identity) ([]byte, error) {
	if identity == nil {
		return nil, errors.New("encode: nil identity")
	}
	return json.Marshal(identity)
}

// Decode unmarshals and validates the identity.
func (JSONCodec) Decode(data []byte) (*model.Identity, error) {
	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Claims carries the identity inside a signed token.
type Claims struct {
	model.Identity
	jwt.RegisteredClaims
}

// SignedCodec stores the identity as an HS256 token so a record edited
// outside the process no longer decodes.
type SignedCodec struct {
	secret []byte
	now    func() time.Time
}

var _ IdentityCodec = (*SignedCodec)(nil)

// NewSignedCodec creates a codec signing with secret.
func NewSignedCodec(secret string) *SignedCodec {
	return &SignedCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Encode signs the identity.
func (c *SignedCodec) Encode(identity *model.Identity) ([]byte, error) {
	if identity == nil {
		return nil, errors.New("encode: nil identity")
	}
	claims := &Claims{
		Identity: *identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity.ID,
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign identity: %w", err)
	}
	return []byte(token), nil
}

// Decode verifies the signature and returns the identity.
func (c *SignedCodec) Decode(data []byte) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(string(data), &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verify identity: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject != claims.Identity.ID {
		return nil, errors.New("subject does not match identity")
	}
	identity := claims.Identity
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return &identity, nil
}
