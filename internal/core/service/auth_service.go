package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	maxUsernameLength = 150
)

// TokenConfig holds the signing secret and token lifetimes.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// tokenClaims is the JWT payload for both token types. Subject carries the
// user id; ID (jti) is only meaningful for refresh tokens.
type tokenClaims struct {
	Username string `json:"username"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

// AuthService implements signup, signin and the token lifecycle.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenStore
	activity activityLog
	cfg      TokenConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenStore,
	activity ports.ActivityRepository,
	cfg TokenConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		activity: newActivityLog(activity, log),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	username, err := normalizeUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user signed up")
	s.activity.record(ctx, created, domain.ActivitySignup, created.Username)
	return created, nil
}

// Signin checks credentials and issues a token pair. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil, domain.NewValidationError("email", "this field may not be blank")
	}
	if password == "" {
		return nil, nil, domain.NewValidationError("password", "this field may not be blank")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is issued. A consumed or revoked token is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, ok, err := s.tokens.Consume(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !ok || strconv.FormatInt(userID, 10) != claims.Subject {
		s.log.Warn().Str("jti", claims.ID).Msg("refresh token reuse or revoked token presented")
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return s.issuePair(ctx, user)
}

// Signout revokes a refresh token. Revoking an already revoked token succeeds.
func (s *AuthService) Signout(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}
	if err := s.tokens.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	now := s.now()

	access, err := s.sign(user, tokenTypeAccess, "", now, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh, err := s.sign(user, tokenTypeRefresh, jti, now, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, jti, user.ID, s.cfg.RefreshTTL); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(user *domain.User, typ, jti string, now time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		Username: user.Username,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (s *AuthService) parse(raw, wantType string) (*tokenClaims, error) {
	if raw == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, domain.ErrInvalidToken
	}
	if wantType == tokenTypeRefresh && claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.NewValidationError("email", "this field may not be blank")
	}
	if len(email) > domain.MaxEmailLength {
		return "", domain.NewValidationError("email", fmt.Sprintf("ensure this field has no more than %d characters", domain.MaxEmailLength))
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("email", "enter a valid email address")
	}
	return email, nil
}

func normalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", domain.NewValidationError("username", "this field may not be blank")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return "", domain.NewValidationError("username", fmt.Sprintf("ensure this field has no more than %d characters", maxUsernameLength))
	}
	return username, nil
}

// checkPassword enforces the length bounds. bcrypt rejects input over 72 bytes.
func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return domain.NewValidationError("password", fmt.Sprintf("ensure this field has at least %d characters", domain.MinPasswordLength))
	}
	if len(password) > domain.MaxPasswordBytes {
		return domain.NewValidationError("password", fmt.Sprintf("ensure this field has no more than %d bytes", domain.MaxPasswordBytes))
	}
	return nil
}
