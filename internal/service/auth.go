package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tasktracker/tasktracker-go/internal/clock"
	"github.com/tasktracker/tasktracker-go/internal/crypto"
	"github.com/tasktracker/tasktracker-go/internal/model"
	"github.com/tasktracker/tasktracker-go/internal/repository"
)

// AuthService handles registration and credential checks.
type AuthService struct {
	repo        *repository.UserRepository
	hasher      *crypto.Hasher
	clock       clock.Clock
	strictRules bool
}

// NewAuthService creates a new AuthService. With strictRules set, registration
// applies explicit login and password shape rules instead of the legacy
// compound check.
func NewAuthService(repo *repository.UserRepository, hasher *crypto.Hasher, clk clock.Clock, strictRules bool) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		clock:       clk,
		strictRules: strictRules,
	}
}

// Register validates form and stores a new user. Checks run in order and the
// first failure wins: existing login, shape rules, password confirmation,
// field bounds.
func (s *AuthService) Register(ctx context.Context, form model.RegisterForm) (*model.User, error) {
	_, err := s.repo.GetByLogin(ctx, form.Login)
	switch {
	case err == nil:
		return nil, ErrDuplicateUser
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, err
	}

	if s.strictRules {
		if !strictShapeOK(form.Login, form.Password) {
			return nil, ErrInvalidInput
		}
	} else if legacyShapeRejected(form.Login, form.Password, form.Password2) {
		return nil, ErrInvalidInput
	}

	if form.Password != form.Password2 {
		return nil, ErrPasswordMismatch
	}

	if err := validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, err
	}
	ok, err := s.hasher.Verify(form.Password, hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("password hash failed verification")
	}

	user := &model.User{
		Login:        form.Login,
		PasswordHash: hash,
		CreatedAt:    s.clock.NowUTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

// Login checks the submitted credentials. It establishes no session.
func (s *AuthService) Login(ctx context.Context, form model.LoginForm) (*model.User, error) {
	user, err := s.repo.GetByLogin(ctx, form.Login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	match, err := s.hasher.Verify(form.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// legacyShapeRejected is the historical registration check, kept verbatim:
// every condition must hold at once for the input to be rejected.
func legacyShapeRejected(login, password, password2 string) bool {
	return strings.Count(login, "@") > 1 &&
		strings.HasPrefix(login, "@") &&
		!strings.Contains(login, ".") &&
		utf8.RuneCountInString(login) < 4 &&
		password != password2 &&
		utf8.RuneCountInString(password) < 5
}

func strictShapeOK(login, password string) bool {
	return utf8.RuneCountInString(login) >= 4 &&
		strings.Count(login, "@") <= 1 &&
		!strings.HasPrefix(login, "@") &&
		utf8.RuneCountInString(password) >= 5
}
