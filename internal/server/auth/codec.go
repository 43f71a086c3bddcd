// Package auth implements the credential lifecycle: signing and verifying
// access/refresh tokens, issuing token pairs, and carrying the verified
// identity through a request context.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Kind selects the secret and validity window used for a token.
type Kind int

const (
	Access Kind = iota
	Refresh
)

func (k Kind) String() string {
	switch k {
	case Access:
		return "access"
	case Refresh:
		return "refresh"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Payload is the identity signed into every token.
type Payload struct {
	SubjectID    int64  `json:"userId"`
	SubjectEmail string `json:"email"`
}

type claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

type kindParams struct {
	secret []byte
	ttl    time.Duration
}

// Codec signs and verifies HS256 tokens. Each Kind has its own secret, so a
// token minted for one kind never verifies as the other.
type Codec struct {
	kinds map[Kind]kindParams
	now   func() time.Time
}

type CodecOption func(*Codec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec for the given secrets and windows. The secrets
// must be non-empty and different from each other.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...CodecOption) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token validity must be positive")
	}

	c := &Codec{
		kinds: map[Kind]kindParams{
			Access:  {secret: []byte(accessSecret), ttl: accessTTL},
			Refresh: {secret: []byte(refreshSecret), ttl: refreshTTL},
		},
		now: time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Issue signs p as a token of the given kind, valid from now for the kind's window.
func (c *Codec) Issue(kind Kind, p Payload) (string, error) {
	params, ok := c.kinds[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %s", kind)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.SubjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(params.ttl)),
		},
		UserID: p.SubjectID,
		Email:  p.SubjectEmail,
	})

	s, err := token.SignedString(params.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return s, nil
}

// Verify checks the signature against the kind's secret and the embedded
// expiry against the clock. Every failure wraps common.ErrInvalidToken and
// one of common.ErrTokenExpired or common.ErrInvalidSignature.
func (c *Codec) Verify(kind Kind, token string) (Payload, error) {
	params, ok := c.kinds[kind]
	if !ok {
		return Payload{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrInvalidSignature)
	}

	cl := &claims{}
	_, err := jwt.ParseWithClaims(token, cl,
		func(*jwt.Token) (any, error) { return params.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Payload{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return Payload{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrInvalidSignature)
	}

	return Payload{SubjectID: cl.UserID, SubjectEmail: cl.Email}, nil
}
