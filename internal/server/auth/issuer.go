package auth

import (
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer mints token pairs for verified identities and exchanges refresh
// tokens for new access tokens. Refresh tokens are never rotated.
type Issuer struct {
	codec *Codec
}

func NewIssuer(codec *Codec) *Issuer {
	return &Issuer{codec: codec}
}

// IssueFor signs one token of each kind for the identity.
func (i *Issuer) IssueFor(id int64, email string) (*TokenPair, error) {
	p := Payload{SubjectID: id, SubjectEmail: email}

	access, err := i.codec.Issue(Access, p)
	if err != nil {
		return nil, err
	}
	refresh, err := i.codec.Issue(Refresh, p)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies refreshToken and returns a fresh access token for the same
// subject. Failures wrap common.ErrorUnauthorized.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	p, err := i.codec.Verify(Refresh, refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return i.codec.Issue(Access, p)
}
