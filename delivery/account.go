package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andres-gutierrezri/kitty-project/config"
	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/dto"
	"github.com/andres-gutierrezri/kitty-project/service"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

type AccountHandler struct {
	accountUC domain.AccountUseCase
}

func NewAccountHandler(r *gin.Engine, accountUC domain.AccountUseCase, jwtManager *utils.JWTManager) {
	handler := &AccountHandler{accountUC: accountUC}

	account := r.Group("/account")
	account.Use(config.AuthMiddleware(jwtManager))
	{
		account.GET("/profile", handler.GetProfile)
		account.PATCH("/profile", handler.UpdateProfile)
		account.GET("/export", handler.ExportData)

		account.GET("/deletion", handler.GetDeletionStatus)
		account.POST("/deletion", handler.RequestDeletion)
		account.DELETE("/deletion", handler.CancelDeletion)
		account.POST("/deletion/immediate", handler.RequestImmediateDeletion)
	}
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	user, err := h.accountUC.GetProfile(c.Request.Context(), c.GetString("userUUID"))
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

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	user, err := h.accountUC.UpdateProfile(c.Request.Context(), c.GetString("userUUID"), domain.ProfileUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		Bio:        req.Bio,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *AccountHandler) ExportData(c *gin.Context) {
	export, err := h.accountUC.ExportData(c.Request.Context(), c.GetString("userUUID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="account_export.json"`)
	c.JSON(http.StatusOK, export)
}

func (h *AccountHandler) GetDeletionStatus(c *gin.Context) {
	status, err := h.accountUC.GetDeletionStatus(c.Request.Context(), c.GetString("userUUID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  status,
	})
}

func (h *AccountHandler) RequestDeletion(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	username := c.GetString("userUUID")
	status, err := h.accountUC.RequestDeletion(c.Request.Context(), username, req.Password, req.ConfirmText)
	if err != nil {
		h.deletionError(c, err)
		return
	}

	utils.PrintLogInfo(&username, http.StatusOK, "RequestDeletion")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your account has been deactivated and will be permanently deleted on " +
			status.ScheduledDeletionAt.Format("02/01/2006") + ". Log in before that date to cancel",
		"status": status,
	})
}

func (h *AccountHandler) CancelDeletion(c *gin.Context) {
	if err := h.accountUC.CancelDeletion(c.Request.Context(), c.GetString("userUUID")); err != nil {
		if errors.Is(err, domain.ErrNotPendingDeletion) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "The account is not pending deletion",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "The deletion of your account has been cancelled",
	})
}

func (h *AccountHandler) RequestImmediateDeletion(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	username := c.GetString("userUUID")
	err := h.accountUC.RequestImmediateDeletion(c.Request.Context(), username, req.Password, req.ConfirmText, req.ConfirmImmediate)
	if err != nil {
		h.deletionError(c, err)
		return
	}

	utils.PrintLogInfo(&username, http.StatusOK, "RequestImmediateDeletion")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your account and all associated data have been permanently deleted",
	})
}

func (h *AccountHandler) deletionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Incorrect password",
		})
	case errors.Is(err, service.ErrWrongConfirmPhrase):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "You must type exactly: " + domain.ConfirmationPhrase,
		})
	case errors.Is(err, service.ErrImmediateNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Immediate deletion requires the explicit confirmation flag",
		})
	case errors.Is(err, domain.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "The account already has a deletion in progress",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
	}
}
