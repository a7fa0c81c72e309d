// Package session holds the auth state machine: logged out until a login
// succeeds, logged in until an explicit logout. Every scoped operation
// resolves its owner through Current and refuses when logged out.
package session

import (
	"context"

	"github.com/pkg/errors"

	"max.ks1230/accounting/internal/entity/account"
	"max.ks1230/accounting/internal/model/customerr"
)

var (
	// ErrLoginFailed is the one answer for a wrong name and for a wrong
	// secret, so callers cannot probe which accounts exist.
	ErrLoginFailed = errors.New("name or password is incorrect")

	ErrNotLoggedIn = errors.New("no account is logged in")
)

type accountStorage interface {
	CreateAccount(ctx context.Context, rec account.Record) error
	GetAccount(ctx context.Context, name string) (account.Record, error)
}

type Service struct {
	storage accountStorage
	current string
}

func NewService(storage accountStorage) *Service {
	return &Service{storage: storage}
}

// Register creates an account and leaves the session logged out.
func (s *Service) Register(ctx context.Context, name, secret string) error {
	if name == "" || secret == "" {
		return &customerr.ValidationError{Err: "name and password must not be empty"}
	}
	err := s.storage.CreateAccount(ctx, account.Record{Name: name, Secret: secret})
	return errors.Wrap(err, "register")
}

func (s *Service) Login(ctx context.Context, name, secret string) error {
	rec, err := s.storage.GetAccount(ctx, name)
	var notFound *customerr.NotFoundError
	if errors.As(err, &notFound) {
		return ErrLoginFailed
	}
	if err != nil {
		return errors.Wrap(err, "login")
	}
	if rec.Secret != secret {
		return ErrLoginFailed
	}
	s.current = name
	return nil
}

func (s *Service) Logout() {
	s.current = ""
}

func (s *Service) LoggedIn() bool {
	return s.current != ""
}

// Current returns the acting account name, failing closed when logged out.
func (s *Service) Current() (string, error) {
	if s.current == "" {
		return "", ErrNotLoggedIn
	}
	return s.current, nil
}
