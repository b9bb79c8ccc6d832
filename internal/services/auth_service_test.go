package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/repository/memory"
	"github.com/baharkarakas/blog-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cheapArgon = auth.Argon2Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", "HS256", 60*time.Minute)
	require.NoError(t, err)
	return tm
}

func newAuth(t *testing.T, users repository.Users) (*AuthService, *auth.TokenManager) {
	t.Helper()
	tm := newTokens(t)
	return NewAuthService(users, auth.NewArgon2Hasher(cheapArgon), tm), tm
}

func TestRegister_ThenLoginSameUserID(t *testing.T) {
	ctx := context.Background()
	svc, tm := newAuth(t, memory.NewStore().Users())

	reg, err := svc.Register(ctx, "x@x.com", "validlogin", "correctpass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", reg.TokenType)
	assert.Equal(t, models.PublicUser{ID: reg.User.ID, Name: "validlogin", Email: "x@x.com"}, reg.User)

	in, err := svc.Login(ctx, "x@x.com", "correctpass")
	require.NoError(t, err)

	claims, err := tm.Verify(in.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "x@x.com", claims.Subject)
	assert.Equal(t, "validlogin", claims.Name)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, _ := newAuth(t, store.Users())

	first, err := svc.Register(ctx, "x@x.com", "validlogin", "correctpass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "x@x.com", "otherlogin", "otherpass1")
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	u, err := store.Users().GetByEmail(ctx, "x@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, u.ID)
	assert.Equal(t, "validlogin", u.Login)

	// the original password still works
	_, err = svc.Login(ctx, "x@x.com", "correctpass")
	require.NoError(t, err)
}

// racingUsers reports the email as free but loses the insert race.
type racingUsers struct{ repository.Users }

func (racingUsers) EmailExists(context.Context, string) (bool, error) { return false, nil }
func (racingUsers) Create(context.Context, models.User) (models.User, error) {
	return models.User{}, repository.ErrDuplicate
}

func TestRegister_DuplicateOnInsertRace(t *testing.T) {
	svc, _ := newAuth(t, racingUsers{})
	_, err := svc.Register(context.Background(), "x@x.com", "validlogin", "correctpass")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

// failingUsers fails every store call.
type failingUsers struct{ repository.Users }

func (failingUsers) EmailExists(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}
func (failingUsers) GetByEmail(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("connection refused")
}

func TestRegister_ValidationBeforeStore(t *testing.T) {
	// failingUsers would surface ErrStore if it were reached
	svc, _ := newAuth(t, failingUsers{})

	_, err := svc.Register(context.Background(), "bad-email", "ab", "short")
	var errs validation.Errs
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 3)
	assert.Equal(t, validation.RuleEmail, errs[0].Rule)
	assert.Equal(t, validation.RuleMinLength, errs[1].Rule)
	assert.Equal(t, validation.RuleMinLength, errs[2].Rule)
	assert.NotErrorIs(t, err, ErrStore)
}

func TestStoreFailuresAreReported(t *testing.T) {
	svc, _ := newAuth(t, failingUsers{})

	_, err := svc.Register(context.Background(), "x@x.com", "validlogin", "correctpass")
	require.ErrorIs(t, err, ErrStore)

	_, err = svc.Login(context.Background(), "x@x.com", "correctpass")
	require.ErrorIs(t, err, ErrStore)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t, memory.NewStore().Users())
	_, err := svc.Register(ctx, "x@x.com", "validlogin", "correctpass")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "nobody@x.com", "correctpass")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "x@x.com", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Users().Create(ctx, models.User{Email: "x@x.com", Login: "validlogin", PasswordHash: "garbage"})
	require.NoError(t, err)

	svc, _ := newAuth(t, store.Users())
	_, err = svc.Login(ctx, "x@x.com", "correctpass")
	require.ErrorIs(t, err, auth.ErrMalformedHash)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
