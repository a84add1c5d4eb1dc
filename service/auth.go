package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email address not verified")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("current password mismatch")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type authService struct {
	userRepo     domain.UserRepository
	tokens       domain.TokenStore
	notifier     domain.Notifier
	accessToken  *utils.JWTManager
	refreshToken *utils.JWTManager
	baseURL      string
}

func NewAuthService(userRepo domain.UserRepository, tokens domain.TokenStore, notifier domain.Notifier, secret, baseURL string) domain.AuthUseCase {
	return &authService{
		userRepo:     userRepo,
		tokens:       tokens,
		notifier:     notifier,
		accessToken:  utils.NewJWTManager(secret, time.Hour),
		refreshToken: utils.NewJWTManager(secret, 7*24*time.Hour),
		baseURL:      baseURL,
	}
}

func (s *authService) GetAccessTokenManager() *utils.JWTManager {
	return s.accessToken
}

func (s *authService) GetRefreshTokenManager() *utils.JWTManager {
	return s.refreshToken
}

func (s *authService) Register(ctx context.Context, username, email, firstName, lastName, password string) ([]domain.PasswordViolation, error) {
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.userRepo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	}

	user := &domain.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      domain.RoleUser,
		IsActive:  true,
	}

	// The policy runs against the personal data the account will carry, so
	// "password contains your own name" is caught at registration time.
	if violations := domain.ValidatePassword(password, user); len(violations) > 0 {
		return violations, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// The verification email is mandatory. If it cannot be delivered the
	// registration is rolled back and reported as failed.
	if err := s.sendVerification(ctx, user); err != nil {
		if delErr := s.userRepo.DeleteUser(ctx, user.UUID); delErr != nil {
			log.Error().Err(delErr).Str("user", user.UUID).Msg("rollback after failed verification send")
		}
		return nil, fmt.Errorf("send verification email: %w", err)
	}

	return nil, nil
}

func (s *authService) sendVerification(ctx context.Context, user *domain.User) error {
	token, err := utils.GenerateToken(32)
	if err != nil {
		return err
	}
	if err := s.tokens.SaveVerificationToken(ctx, token, user.UUID); err != nil {
		return err
	}

	return s.notifier.Send(ctx, domain.Notice{
		Kind:     domain.NoticeVerification,
		To:       user.Email,
		Username: user.Username,
		Data: map[string]string{
			"link": s.baseURL + "/auth/verify-email?token=" + token,
		},
	})
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	userUUID, err := s.tokens.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return err
	}

	user.EmailVerified = true
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the address is registered.
		return nil
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	return s.sendVerification(ctx, user)
}

// Login checks credentials and applies the implicit-cancel rule: a
// successful login on an account pending deletion reactivates it.
func (s *authService) Login(ctx context.Context, identifier, password, ip, userAgent string) (*domain.LoginResult, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, identifier)
	if err != nil {
		user, err = s.userRepo.GetUserByEmail(ctx, identifier)
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordLogin(ctx, user.UUID, ip, userAgent, false)
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	lifecycle, cancelled := user.Lifecycle().AuthenticateSuccessfully()
	if cancelled {
		user.SetLifecycle(lifecycle)
		log.Info().Str("user", user.UUID).Msg("pending deletion cancelled by login")
	} else if !user.IsActive {
		// Disabled by an administrator, not by a deletion request.
		return nil, ErrAccountDisabled
	}

	user.LastLoginIP = ip
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.recordLogin(ctx, user.UUID, ip, userAgent, true)

	accessToken, err := s.accessToken.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refreshToken.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}

	// Best-effort: a failed alert never fails the login.
	if err := s.notifier.Send(ctx, domain.Notice{
		Kind:     domain.NoticeLoginAlert,
		To:       user.Email,
		Username: user.Username,
		Data:     map[string]string{"ip": ip},
	}); err != nil {
		log.Warn().Err(err).Str("user", user.UUID).Msg("login alert not delivered")
	}

	return &domain.LoginResult{
		Tokens: &domain.AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		User:              user,
		DeletionCancelled: cancelled,
	}, nil
}

func (s *authService) recordLogin(ctx context.Context, userUUID, ip, userAgent string, success bool) {
	err := s.userRepo.RecordLogin(ctx, &domain.LoginHistory{
		UserUUID:  userUUID,
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   success,
	})
	if err != nil {
		log.Warn().Err(err).Str("user", userUUID).Msg("login history not recorded")
	}
}

func (s *authService) Me(ctx context.Context, userUUID string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, userUUID)
}

func (s *authService) ChangePassword(ctx context.Context, userUUID, currentPassword, newPassword string) ([]domain.PasswordViolation, error) {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return nil, ErrPasswordMismatch
	}

	if violations := domain.ValidatePassword(newPassword, user); len(violations) > 0 {
		return violations, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.notifyPasswordChanged(ctx, user)
	return nil, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// Same response whether or not the address exists.
		return nil
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		return err
	}
	if err := s.tokens.SaveResetToken(ctx, token, user.UUID); err != nil {
		return err
	}

	if err := s.notifier.Send(ctx, domain.Notice{
		Kind:     domain.NoticePasswordReset,
		To:       user.Email,
		Username: user.Username,
		Data: map[string]string{
			"link": s.baseURL + "/auth/reset-password?token=" + token,
		},
	}); err != nil {
		log.Warn().Err(err).Str("user", user.UUID).Msg("password reset email not delivered")
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) ([]domain.PasswordViolation, error) {
	userUUID, err := s.tokens.ConsumeResetToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if violations := domain.ValidatePassword(newPassword, user); len(violations) > 0 {
		return violations, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.notifyPasswordChanged(ctx, user)
	return nil, nil
}

func (s *authService) notifyPasswordChanged(ctx context.Context, user *domain.User) {
	if err := s.notifier.Send(ctx, domain.Notice{
		Kind:     domain.NoticePasswordChanged,
		To:       user.Email,
		Username: user.Username,
	}); err != nil {
		log.Warn().Err(err).Str("user", user.UUID).Msg("password changed notice not delivered")
	}
}
