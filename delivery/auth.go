package delivery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andres-gutierrezri/kitty-project/config"
	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/dto"
	"github.com/andres-gutierrezri/kitty-project/middleware"
	"github.com/andres-gutierrezri/kitty-project/service"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
	lang   string
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, limiter *middleware.RateLimiter, lang string) {
	if lang == "" {
		lang = "EN"
	}
	handler := &AuthHandler{authUC: authUC, lang: lang}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/auth")
	if limiter != nil {
		public.Use(limiter.Middleware(middleware.RateLimiterConfig{
			RequestsPerWindow: 10,
			WindowDuration:    time.Minute,
			KeyPrefix:         "ratelimit:auth",
		}))
	}
	{
		public.POST("/register", handler.Register)
		public.POST("/verify-email", handler.VerifyEmail)
		public.GET("/verify-email", handler.VerifyEmailLink)
		public.POST("/resend-verification", handler.ResendVerification)
		public.POST("/forgot-password", handler.ForgotPassword)
		public.POST("/reset-password", handler.ResetPassword)
		public.POST("/refresh-token", handler.RefreshToken)
		public.POST("/logout", handler.Logout)
	}

	// Login gets a stricter window against brute force.
	login := r.Group("/auth")
	if limiter != nil {
		login.Use(limiter.Middleware(middleware.RateLimiterConfig{
			RequestsPerWindow: 5,
			WindowDuration:    5 * time.Minute,
			KeyPrefix:         "ratelimit:login",
		}))
	}
	login.POST("/login", handler.Login)

	protected := r.Group("/auth")
	protected.Use(config.AuthMiddleware(authUC.GetAccessTokenManager()))
	{
		protected.GET("/me", handler.Me)
		protected.POST("/change-password", handler.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	violations, err := h.authUC.Register(c.Request.Context(), req.Username, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrUsernameTaken) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if len(violations) > 0 {
		// The whole list at once, so the user fixes everything in one pass.
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"message":    "Password does not meet the policy",
			"violations": domain.ViolationMessages(violations, h.lang),
		})
		return
	}

	utils.PrintLogInfo(&req.Username, http.StatusCreated, "Register")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful, please check your email to verify your account",
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}
	h.verify(c, req.Token)
}

// VerifyEmailLink serves the link embedded in the verification email.
func (h *AuthHandler) VerifyEmailLink(c *gin.Context) {
	h.verify(c, c.Query("token"))
}

func (h *AuthHandler) verify(c *gin.Context, token string) {
	if err := h.authUC.VerifyEmail(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid or expired verification token",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified, you can now log in",
	})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ResendVerification(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the address is registered, a verification email has been sent",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.Identifier, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrEmailNotVerified) || errors.Is(err, service.ErrAccountDisabled) {
			status = http.StatusForbidden
		}
		utils.PrintLogInfo(&req.Identifier, status, "Login")
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	// Refresh token as HttpOnly cookie for web clients; mobile clients
	// read it from the body.
	c.SetCookie("refresh_token", result.Tokens.RefreshToken, int((7 * 24 * time.Hour).Seconds()), "/", "", false, true)

	message := "Login successful"
	if result.DeletionCancelled {
		message = "Welcome back! The deletion of your account has been cancelled automatically"
	}

	utils.PrintLogInfo(&result.User.Username, http.StatusOK, "Login")
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            message,
		"deletion_cancelled": result.DeletionCancelled,
		"access_token":       result.Tokens.AccessToken,
		"refresh_token":      result.Tokens.RefreshToken,
		"user":               result.User,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		var req dto.RefreshTokenRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "No refresh token provided",
			})
			return
		}
		refreshToken = req.RefreshToken
	}

	userUUID, role, err := h.authUC.GetRefreshTokenManager().VerifyToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid or expired refresh token",
		})
		return
	}

	// The account may have been deleted since the token was issued.
	if _, err := h.authUC.Me(c.Request.Context(), userUUID); err != nil {
		c.SetCookie("refresh_token", "", -1, "/", "", false, true)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "User account not found",
		})
		return
	}

	accessToken, err := h.authUC.GetAccessTokenManager().GenerateToken(userUUID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate new access token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": accessToken,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.Me(c.Request.Context(), c.GetString("userUUID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to process the request",
		})
		return
	}

	// Same answer whether or not the address is registered.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the address is registered, a password reset email has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	violations, err := h.authUC.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidToken) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"message":    "Password does not meet the policy",
			"violations": domain.ViolationMessages(violations, h.lang),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successfully, you can now log in",
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	violations, err := h.authUC.ChangePassword(c.Request.Context(), c.GetString("userUUID"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrPasswordMismatch) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"message":    "Password does not meet the policy",
			"violations": domain.ViolationMessages(violations, h.lang),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}
