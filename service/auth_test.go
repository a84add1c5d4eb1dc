package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

const authTestSecret = "0123456789abcdef0123456789abcdef"

func newAuthFixture() (*fakeUserRepo, *fakeTokenStore, *fakeNotifier, domain.AuthUseCase) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	notifier := newFakeNotifier()
	svc := NewAuthService(repo, tokens, notifier, authTestSecret, "http://localhost:8080")
	return repo, tokens, notifier, svc
}

func TestAuthService_Register(t *testing.T) {
	repo, tokens, notifier, svc := newAuthFixture()

	violations, err := svc.Register(context.Background(), "dora", "dora@mail.com", "Dora", "Márquez", "Xk9!mT2p")
	require.NoError(t, err)
	assert.Empty(t, violations)

	user, err := repo.GetUserByUsername(context.Background(), "dora")
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "Xk9!mT2p", user.Password) // hashed

	require.Equal(t, []domain.NoticeKind{domain.NoticeVerification}, notifier.sentKinds())
	assert.Len(t, tokens.verification, 1)
}

func TestAuthService_RegisterPolicyViolations(t *testing.T) {
	repo, _, notifier, svc := newAuthFixture()

	// Password contains the username: violations come back as data.
	violations, err := svc.Register(context.Background(), "johndoe", "jd@mail.com", "", "", "Johndoe1!")
	require.NoError(t, err)
	require.Equal(t, []domain.PasswordViolation{domain.ViolationTooSimilar}, violations)

	// Nothing persisted, nothing sent.
	_, err = repo.GetUserByUsername(context.Background(), "johndoe")
	assert.Error(t, err)
	assert.Empty(t, notifier.sentKinds())
}

func TestAuthService_RegisterVerificationSendFailure(t *testing.T) {
	repo, _, notifier, svc := newAuthFixture()
	notifier.fail[domain.NoticeVerification] = assert.AnError

	// The verification email is mandatory: the registration fails and the
	// account is rolled back.
	_, err := svc.Register(context.Background(), "dora", "dora@mail.com", "", "", "Xk9!mT2p")
	require.Error(t, err)

	_, err = repo.GetUserByUsername(context.Background(), "dora")
	assert.Error(t, err)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), "dora", "dora@mail.com", "", "", "Xk9!mT2p")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "dora2", "dora@mail.com", "", "", "Xk9!mT2p")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(context.Background(), "dora", "other@mail.com", "", "", "Xk9!mT2p")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_VerifyEmailAndLogin(t *testing.T) {
	repo, tokens, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), "dora", "dora@mail.com", "", "", "Xk9!mT2p")
	require.NoError(t, err)

	// Unverified accounts cannot log in.
	_, err = svc.Login(context.Background(), "dora", "Xk9!mT2p", "10.0.0.1", "go-test")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	var token string
	for tok := range tokens.verification {
		token = tok
	}
	require.NoError(t, svc.VerifyEmail(context.Background(), token))

	// Tokens are single use.
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), token), ErrInvalidToken)

	result, err := svc.Login(context.Background(), "dora", "Xk9!mT2p", "10.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.False(t, result.DeletionCancelled)

	// Login history recorded the success.
	history, err := repo.GetLoginHistory(context.Background(), result.User.UUID, 10)
	require.NoError(t, err)
	require.Len(t, *history, 1)
	assert.True(t, (*history)[0].Success)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo, _, _, svc := newAuthFixture()
	user := seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	_, err := svc.Login(context.Background(), "dora", "nope", "10.0.0.1", "go-test")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The failed attempt lands in the history.
	history, err := repo.GetLoginHistory(context.Background(), user.UUID, 10)
	require.NoError(t, err)
	require.Len(t, *history, 1)
	assert.False(t, (*history)[0].Success)
}

func TestAuthService_LoginByEmail(t *testing.T) {
	repo, _, _, svc := newAuthFixture()
	seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	result, err := svc.Login(context.Background(), "dora@mail.com", "Xk9!mT2p", "10.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, "dora", result.User.Username)
}

func TestAuthService_LoginCancelsPendingDeletion(t *testing.T) {
	repo, _, notifier, svc := newAuthFixture()
	user := seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	accountSvc := NewAccountService(repo, notifier, fixedClock(sweepT0))
	_, err := accountSvc.RequestDeletion(context.Background(), user.UUID, "Xk9!mT2p", domain.ConfirmationPhrase)
	require.NoError(t, err)

	// Logging back in during the grace period reactivates the account.
	result, err := svc.Login(context.Background(), "dora", "Xk9!mT2p", "10.0.0.1", "go-test")
	require.NoError(t, err)
	assert.True(t, result.DeletionCancelled)

	stored, err := repo.GetUserByUUID(context.Background(), user.UUID)
	require.NoError(t, err)
	assert.False(t, stored.PendingDeletion)
	assert.True(t, stored.IsActive)
	assert.Nil(t, stored.ScheduledDeletionAt)

	// A later sweep finds nothing to purge.
	later := NewAccountService(repo, notifier, fixedClock(sweepT0.Add(31*24*time.Hour)))
	notices, err := later.SweepExpiredAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestAuthService_LoginDisabledAccount(t *testing.T) {
	repo, _, _, svc := newAuthFixture()
	user := seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	user.IsActive = false
	require.NoError(t, repo.UpdateUser(context.Background(), user))

	_, err := svc.Login(context.Background(), "dora", "Xk9!mT2p", "10.0.0.1", "go-test")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthService_LoginAlertFailureDoesNotFailLogin(t *testing.T) {
	repo, _, notifier, svc := newAuthFixture()
	notifier.fail[domain.NoticeLoginAlert] = assert.AnError
	seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	result, err := svc.Login(context.Background(), "dora", "Xk9!mT2p", "10.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotNil(t, result.Tokens)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo, _, notifier, svc := newAuthFixture()
	user := seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	_, err := svc.ChangePassword(context.Background(), user.UUID, "wrong", "Nw7$kQ1z")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	violations, err := svc.ChangePassword(context.Background(), user.UUID, "Xk9!mT2p", "short")
	require.NoError(t, err)
	assert.NotEmpty(t, violations)

	violations, err = svc.ChangePassword(context.Background(), user.UUID, "Xk9!mT2p", "Nw7$kQ1z")
	require.NoError(t, err)
	assert.Empty(t, violations)

	_, err = svc.Login(context.Background(), "dora", "Nw7$kQ1z", "10.0.0.1", "go-test")
	require.NoError(t, err)

	assert.Contains(t, notifier.sentKinds(), domain.NoticePasswordChanged)
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	repo, tokens, notifier, svc := newAuthFixture()
	seedUser(t, repo, "dora", "dora@mail.com", "Xk9!mT2p")

	require.NoError(t, svc.ForgotPassword(context.Background(), "dora@mail.com"))
	require.Len(t, tokens.reset, 1)
	assert.Contains(t, notifier.sentKinds(), domain.NoticePasswordReset)

	var token string
	for tok := range tokens.reset {
		token = tok
	}

	violations, err := svc.ResetPassword(context.Background(), token, "Nw7$kQ1z")
	require.NoError(t, err)
	assert.Empty(t, violations)

	_, err = svc.Login(context.Background(), "dora", "Nw7$kQ1z", "10.0.0.1", "go-test")
	require.NoError(t, err)

	// The token was consumed.
	_, err = svc.ResetPassword(context.Background(), token, "Qp3&vB8x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	_, tokens, notifier, svc := newAuthFixture()

	// No account enumeration: unknown addresses are silently accepted.
	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@mail.com"))
	assert.Empty(t, tokens.reset)
	assert.Empty(t, notifier.sentKinds())
}
