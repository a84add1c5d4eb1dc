package domain

import (
	"context"

	"github.com/andres-gutierrezri/kitty-project/utils"
)

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult carries the tokens plus whether a pending deletion was
// implicitly cancelled by this login, so the handler can tell the user.
type LoginResult struct {
	Tokens            *AuthTokens
	User              *User
	DeletionCancelled bool
}

type AuthUseCase interface {
	GetAccessTokenManager() *utils.JWTManager
	GetRefreshTokenManager() *utils.JWTManager

	// Register creates an unverified account and sends the verification
	// email. A failed verification send is a hard failure: the account is
	// rolled back and the error surfaces to the caller. Policy violations
	// are returned as data, not as an error.
	Register(ctx context.Context, username, email, firstName, lastName, password string) ([]PasswordViolation, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, identifier, password, ip, userAgent string) (*LoginResult, error)
	Me(ctx context.Context, userUUID string) (*User, error)
	ChangePassword(ctx context.Context, userUUID, currentPassword, newPassword string) ([]PasswordViolation, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) ([]PasswordViolation, error)
}

// TokenStore keeps short-lived email-verification and password-reset tokens.
type TokenStore interface {
	SaveVerificationToken(ctx context.Context, token, userUUID string) error
	ConsumeVerificationToken(ctx context.Context, token string) (string, error)
	SaveResetToken(ctx context.Context, token, userUUID string) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}
