package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jeansstore/backend/pkg/auth"
	"github.com/jeansstore/backend/pkg/config"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
	"github.com/jeansstore/backend/pkg/types"
)

// demoUserName is the identity every login resolves to. The flow simulates
// authentication: any email and password combination is accepted.
const demoUserName = "João Silva"

// Service exposes the demonstration auth operations.
type Service interface {
	Login(ctx context.Context, sessionID, email, password string) (*AuthResult, error)
	Register(ctx context.Context, sessionID, name, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) (*types.Notification, error)
	Me(ctx context.Context, sessionID string) (*UserDTO, error)
}

// UserDTO is the signed-in identity read model.
type UserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult pairs the identity with a minted access token and a
// user-facing notification.
type AuthResult struct {
	User         UserDTO            `json:"user"`
	AccessToken  string             `json:"access_token"`
	Notification types.Notification `json:"notification"`
}

type cartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store Store
	carts cartClearer
	cfg   config.SessionConfig
	now   func() time.Time
}

// NewService constructs a session service instance.
func NewService(store Store, carts cartClearer, cfg config.SessionConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart clearer required")
	}
	return &service{store: store, carts: carts, cfg: cfg, now: time.Now}, nil
}

// Login signs the session in as the demo identity using the provided email.
func (s *service) Login(ctx context.Context, sessionID, email, password string) (*AuthResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user := &User{Name: demoUserName, Email: strings.TrimSpace(email)}
	return s.signIn(ctx, sessionID, user, types.Notify("Login realizado!", "Bem-vindo de volta!"))
}

// Register signs the session in with the provided name and email.
func (s *service) Register(ctx context.Context, sessionID, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user := &User{Name: name, Email: strings.TrimSpace(email)}
	return s.signIn(ctx, sessionID, user, types.Notify("Cadastro realizado!", "Sua conta foi criada com sucesso!"))
}

// Logout clears the session identity and empties the cart.
func (s *service) Logout(ctx context.Context, sessionID string) (*types.Notification, error) {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session user")
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	notification := types.Notify("Logout realizado", "Até logo!")
	return &notification, nil
}

// Me returns the signed-in identity for the session.
func (s *service) Me(ctx context.Context, sessionID string) (*UserDTO, error) {
	user, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
	}
	return &UserDTO{Name: user.Name, Email: user.Email}, nil
}

func (s *service) signIn(ctx context.Context, sessionID string, user *User, notification types.Notification) (*AuthResult, error) {
	if err := s.store.Save(ctx, sessionID, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session user")
	}

	token, err := auth.MintAccessToken(s.cfg, s.now(), auth.AccessTokenPayload{
		SessionID: sessionID,
		Name:      user.Name,
		Email:     user.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &AuthResult{
		User:         UserDTO{Name: user.Name, Email: user.Email},
		AccessToken:  token,
		Notification: notification,
	}, nil
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	return nil
}
