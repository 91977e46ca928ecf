package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/littlelemon-backend/internal/users"
	pkgAuth "github.com/angelmondragon/littlelemon-backend/pkg/auth"
	"github.com/angelmondragon/littlelemon-backend/pkg/config"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
)

type stubSessions struct {
	generated map[string]uint
	revoked   []string
	err       error
}

func (s *stubSessions) Generate(_ context.Context, accessID string, userID uint) error {
	if s.err != nil {
		return s.err
	}
	s.generated[accessID] = userID
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	if s.err != nil {
		return s.err
	}
	s.revoked = append(s.revoked, accessID)
	return nil
}

var (
	testJWT      = config.JWTConfig{Secret: "test-secret", Issuer: "littlelemon", ExpirationMinutes: 60}
	testPassword = config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
)

func newTestService(t *testing.T) (Service, *users.Repository, *stubSessions) {
	t.Helper()
	client := dbtest.Open(t)
	repo := users.NewRepository(client.DB())
	sessions := &stubSessions{generated: map[string]uint{}}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWT,
		PasswordConfig: testPassword,
	})
	require.NoError(t, err)
	return svc, repo, sessions
}

func TestRegisterThenIssueToken(t *testing.T) {
	svc, repo, sessions := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterRequest{Username: "sana", Email: "Sana@LittleLemon.test", Password: "lemonpass"})
	require.NoError(t, err)
	assert.Equal(t, "sana", created.Username)
	assert.Equal(t, "sana@littlelemon.test", created.Email)

	resp, err := svc.IssueToken(ctx, TokenRequest{Username: "sana", Password: "lemonpass"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, created.ID, sessions.generated[claims.ID])

	stored, err := repo.FindByUsername(ctx, "sana")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "sana", Password: "lemonpass"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Username: "sana", Password: "otherpass"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
}

func TestIssueTokenRejectsBadCredentials(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{Username: "sana", Password: "lemonpass"})
	require.NoError(t, err)

	for _, req := range []TokenRequest{
		{Username: "sana", Password: "wrong"},
		{Username: "nobody", Password: "lemonpass"},
		{Username: " ", Password: "lemonpass"},
	} {
		_, err := svc.IssueToken(ctx, req)
		assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), "request %+v", req)
	}
	assert.Empty(t, sessions.generated)
}

func TestIssueTokenSessionStoreDown(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{Username: "sana", Password: "lemonpass"})
	require.NoError(t, err)

	sessions.err = errors.New("redis down")
	_, err = svc.IssueToken(ctx, TokenRequest{Username: "sana", Password: "lemonpass"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newTestService(t)
	require.NoError(t, svc.Logout(context.Background(), "jti-1"))
	assert.Equal(t, []string{"jti-1"}, sessions.revoked)

	err := svc.Logout(context.Background(), "")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{UserRepo: users.NewRepository(nil), Now: time.Now})
	assert.Error(t, err)
}
