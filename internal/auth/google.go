package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

var ErrGoogleToken = errors.New("invalid google token")

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier checks ID tokens issued to our OAuth client.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleIdentity, error)
}

type payloadValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

type Google struct {
	clientID  string
	validator payloadValidator
}

func NewGoogle(ctx context.Context, clientID string) (*Google, error) {
	v, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, err
	}
	return &Google{clientID: clientID, validator: v}, nil
}

func (g *Google) Verify(ctx context.Context, raw string) (GoogleIdentity, error) {
	if g.clientID == "" || strings.TrimSpace(raw) == "" {
		return GoogleIdentity{}, ErrGoogleToken
	}

	payload, err := g.validator.Validate(ctx, raw, g.clientID)
	if err != nil {
		return GoogleIdentity{}, ErrGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)

	if email == "" || !verified {
		return GoogleIdentity{}, ErrGoogleToken
	}

	return GoogleIdentity{
		Subject: payload.Subject,
		Email:   strings.ToLower(email),
		Name:    name,
	}, nil
}
