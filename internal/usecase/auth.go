package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/email"
	"github.com/ErlanBelekov/tasklist-api/internal/metrics"
	"github.com/ErlanBelekov/tasklist-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Tokens are long-lived: clients are mobile/web apps that should not force a
// re-login every session.
const defaultTokenTTL = 30 * 24 * time.Hour

type AuthUsecase struct {
	users    repository.UserRepository
	email    email.Sender
	logger   *slog.Logger
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, logger *slog.Logger, jwtKey []byte) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		email:    emailSender,
		logger:   logger.With("component", "auth_usecase"),
		jwtKey:   jwtKey,
		tokenTTL: defaultTokenTTL,
	}
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Avatar   *string
}

// AuthResult bundles the signed-in user with a fresh bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// SignUp hashes the password, stores the new user, and signs a token for it.
// A duplicate email surfaces as domain.ErrEmailTaken.
func (u *AuthUsecase) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, repository.CreateUserInput{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Avatar:       input.Avatar,
	})
	if err != nil {
		return nil, err
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, err
	}

	// Welcome email is best-effort; the account already exists.
	subject := "Welcome to TaskList"
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your account is ready. Create a list and invite your people.</p>`, user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}

	metrics.SignupsTotal.Inc()
	return &AuthResult{User: user, Token: token}, nil
}

// SignIn verifies email+password and signs a token. Unknown email and wrong
// password are deliberately indistinguishable to the caller.
func (u *AuthUsecase) SignIn(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, err
	}

	metrics.SigninsTotal.Inc()
	return &AuthResult{User: user, Token: token}, nil
}

func (u *AuthUsecase) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(u.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
