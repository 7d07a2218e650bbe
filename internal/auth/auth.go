// Package auth signs profiles up and in, and keeps the local session token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/store"
	"github.com/hance08/carteira/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in, run 'carteira login' first")
)

type ProfileStore interface {
	CreateProfile(ctx context.Context, p model.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

type Config struct {
	Secret      string
	TTL         time.Duration
	SessionFile string
}

// Identity stores a signed HS256 token in SessionFile. A missing, expired or
// tampered token means nobody is signed in.
type Identity struct {
	repo        ProfileStore
	secret      []byte
	ttl         time.Duration
	sessionPath string
	now         func() time.Time
}

func NewIdentity(repo ProfileStore, cfg Config) (*Identity, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth secret is empty")
	}
	if cfg.SessionFile == "" {
		return nil, fmt.Errorf("session file path is empty")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &Identity{
		repo:        repo,
		secret:      []byte(cfg.Secret),
		ttl:         ttl,
		sessionPath: cfg.SessionFile,
		now:         time.Now,
	}, nil
}

func (i *Identity) SignUp(ctx context.Context, email, name, password string) (*model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := model.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    i.now(),
	}
	if err := i.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	if err := i.writeSession(p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (i *Identity) SignIn(ctx context.Context, email, password string) (*model.Profile, error) {
	p, err := i.repo.GetProfileByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := i.writeSession(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// CurrentUserID returns the signed-in profile id, false when there is none.
func (i *Identity) CurrentUserID(ctx context.Context) (string, bool) {
	data, err := os.ReadFile(i.sessionPath)
	if err != nil {
		return "", false
	}

	token, err := jwt.Parse(strings.TrimSpace(string(data)), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

func (i *Identity) CurrentProfile(ctx context.Context) (*model.Profile, error) {
	id, ok := i.CurrentUserID(ctx)
	if !ok {
		return nil, ErrNotSignedIn
	}
	p, err := i.repo.GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotSignedIn
		}
		return nil, err
	}
	return p, nil
}

func (i *Identity) SignOut() error {
	if err := os.Remove(i.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

func (i *Identity) writeSession(profileID string) error {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   profileID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(i.sessionPath), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(i.sessionPath, []byte(tokenString), 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
