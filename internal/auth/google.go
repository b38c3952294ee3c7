package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity - подтвержденные данные из Google ID token
type GoogleIdentity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleIdentity, error)
}

// IDTokenVerifier проверяет подпись и audience через google.golang.org/api/idtoken
type IDTokenVerifier struct {
	clientID string
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google id token: %w", err)
	}

	claim := func(key string) string {
		s, _ := payload.Claims[key].(string)
		return s
	}

	identity := &GoogleIdentity{
		Subject:   payload.Subject,
		Email:     claim("email"),
		FirstName: claim("given_name"),
		LastName:  claim("family_name"),
	}
	if identity.Email == "" {
		return nil, errors.New("google id token has no email claim")
	}
	return identity, nil
}
