package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/tasktracker-go/internal/clock"
	"github.com/tasktracker/tasktracker-go/internal/crypto"
	"github.com/tasktracker/tasktracker-go/internal/model"
	"github.com/tasktracker/tasktracker-go/internal/repository"
	"github.com/tasktracker/tasktracker-go/internal/testutil"
)

var testHashParams = crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newTestAuthService(t *testing.T, strict bool) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(testutil.NewDB(t)),
		crypto.NewHasher(testHashParams),
		clock.NewStub(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		strict,
	)
}

func register(login, password, password2 string) model.RegisterForm {
	return model.RegisterForm{Login: login, Password: password, Password2: password2}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc := newTestAuthService(t, false)

	for i := 0; i < 5; i++ {
		login := gofakeit.Username()
		password := gofakeit.Password(true, true, true, false, false, 12)

		user, err := svc.Register(context.Background(), register(login, password, password))
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, login, user.Login)
		assert.NotEqual(t, password, user.PasswordHash)

		stored, err := svc.repo.GetByLogin(context.Background(), login)
		require.NoError(t, err)
		assert.NotEqual(t, password, stored.PasswordHash)
		assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(stored.CreatedAt))
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newTestAuthService(t, false)
	ctx := context.Background()

	_, err := svc.Register(ctx, register("alice", "pw1", "pw1"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, register("alice", "pw2", "pw2"))
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// Existing login wins over every later check.
	_, err = svc.Register(ctx, register("alice", "x", "y"))
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		form    model.RegisterForm
		wantErr error
	}{
		{"mismatch", false, register("bob", "secret1", "secret2"), ErrPasswordMismatch},
		{"legacy predicate all conditions", false, register("@@a", "abc", "abd"), ErrInvalidInput},
		{"legacy predicate has dot", false, register("@@.", "abc", "abd"), ErrPasswordMismatch},
		{"legacy predicate long password", false, register("@@a", "abcdef", "abcdeg"), ErrPasswordMismatch},
		{"legacy short login accepted", false, register("ab", "1", "1"), nil},
		{"empty login", false, register("", "pw", "pw"), ErrInvalidInput},
		{"empty password", false, register("carol", "", ""), ErrInvalidInput},
		{"login too long", false, register(string(make([]byte, 129)), "pw", "pw"), ErrInvalidInput},
		{"strict short login", true, register("ab", "secret", "secret"), ErrInvalidInput},
		{"strict two at signs", true, register("a@b@c.d", "secret", "secret"), ErrInvalidInput},
		{"strict leading at", true, register("@dave", "secret", "secret"), ErrInvalidInput},
		{"strict short password", true, register("dave", "1234", "1234"), ErrInvalidInput},
		{"strict mismatch", true, register("dave", "secret", "secreT"), ErrPasswordMismatch},
		{"strict ok", true, register("dave@example.com", "secret", "secret"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(t, tt.strict)
			_, err := svc.Register(context.Background(), tt.form)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_ConcurrentSameLogin(t *testing.T) {
	svc := newTestAuthService(t, false)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), register("race", "pw", "pw"))
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateUser):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t, false)
	ctx := context.Background()
	_, err := svc.Register(ctx, register("alice", "pw1", "pw1"))
	require.NoError(t, err)

	user, err := svc.Login(ctx, model.LoginForm{Login: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)

	_, err = svc.Login(ctx, model.LoginForm{Login: "alice", Password: "nope"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, model.LoginForm{Login: "nobody", Password: "pw1"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
