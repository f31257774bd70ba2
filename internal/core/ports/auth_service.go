package ports

import (
	"context"

	"github.com/questionhub/qa-api/internal/core/domain"
)

// SignupInput carries the fields accepted at account creation.
type SignupInput struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// TokenPair is the credential set issued at signin and on refresh.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService covers account creation and token lifecycle.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Signin(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Signout(ctx context.Context, refreshToken string) error
	Authenticator
}

// Authenticator resolves an access token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}
