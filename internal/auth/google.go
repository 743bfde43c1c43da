package auth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

var ErrEmailNotVerified = errors.New("google account email is not verified")

type GoogleIdentity struct {
	Email string
	Name  string
	Sub   string
}

// GoogleVerifier checks a Google Sign-In ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleIdentity, error)
}

type googleIDTokenVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleIDTokenVerifier{clientID: clientID}
}

func (v *googleIDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)
	if email == "" || !verified {
		return nil, ErrEmailNotVerified
	}
	return &GoogleIdentity{Email: email, Name: name, Sub: payload.Subject}, nil
}
