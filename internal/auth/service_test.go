package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/auth"
)

// fakeRepo keeps users in memory keyed by email.
type fakeRepo struct {
	byEmail map[string]*auth.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*auth.User{}}
}

func (r *fakeRepo) CreateUser(_ context.Context, u *auth.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u

	return nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}

	return u, nil
}

func newService() (*auth.Service, *fakeRepo) {
	repo := newFakeRepo()
	return auth.NewService(repo, "test-secret", time.Hour), repo
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, token, err := svc.SignUp(ctx, "ana@example.com", "Ana Souza", "s3nh4forte")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3nh4forte", created.PasswordHash)

	signedIn, token, err := svc.SignIn(ctx, "ana@example.com", "s3nh4forte")
	require.NoError(t, err)
	assert.Equal(t, created.ID, signedIn.ID)

	// The token subject round-trips the user id.
	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "", "Ana", "s3nh4forte")
	assert.ErrorIs(t, err, auth.ErrEmailRequired)

	_, _, err = svc.SignUp(ctx, "ana@example.com", "Ana", "123")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "ana@example.com", "Ana", "s3nh4forte")
	require.NoError(t, err)

	_, _, err = svc.SignUp(ctx, "ana@example.com", "Outra Ana", "outrasenha")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "ana@example.com", "Ana", "s3nh4forte")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "ana@example.com", "errada")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _ := newService()

	_, _, err := svc.SignIn(context.Background(), "ninguem@example.com", "qualquer")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc, _ := newService()

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Token signed with a different secret.
	other := auth.NewService(newFakeRepo(), "other-secret", time.Hour)
	_, token, err := other.SignUp(context.Background(), "x@example.com", "X", "s3nh4forte")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	repo := newFakeRepo()
	svc := auth.NewService(repo, "test-secret", -time.Minute)

	_, token, err := svc.SignUp(context.Background(), "ana@example.com", "Ana", "s3nh4forte")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
