package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andres-gutierrezri/kitty-project/config"
	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/dto"
	"github.com/andres-gutierrezri/kitty-project/service"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

type AdminHandler struct {
	adminUC domain.AdminUseCase
}

func NewAdminHandler(r *gin.Engine, adminUC domain.AdminUseCase, jwtManager *utils.JWTManager) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := r.Group("/admin/users")
	admin.Use(config.AuthMiddleware(jwtManager), config.RequireAdmin())
	{
		admin.GET("", handler.ListUsers)
		admin.GET("/:uuid", handler.GetUser)
		admin.PATCH("/:uuid/role", handler.AssignRole)
		admin.PATCH("/:uuid/active", handler.SetActive)
		admin.DELETE("/:uuid", handler.DeleteUser)
		admin.GET("/:uuid/login-history", handler.GetLoginHistory)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUC.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminUC.GetUser(c.Request.Context(), c.Param("uuid"))
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

func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.adminUC.AssignRole(c.Request.Context(), c.Param("uuid"), req.Role); err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
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
		"message": "Role updated",
	})
}

func (h *AdminHandler) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.adminUC.SetActive(c.Request.Context(), c.Param("uuid"), *req.Active); err != nil {
		if errors.Is(err, domain.ErrNotActive) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "The account has a deletion in progress; cancel it first",
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
		"message": "Account status updated",
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	target := c.Param("uuid")
	if target == c.GetString("userUUID") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Administrators cannot delete their own account here",
		})
		return
	}

	if err := h.adminUC.DeleteUser(c.Request.Context(), target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}

	username := c.GetString("userUUID")
	utils.PrintLogInfo(&username, http.StatusOK, "AdminDeleteUser")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted",
	})
}

func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	history, err := h.adminUC.GetLoginHistory(c.Request.Context(), c.Param("uuid"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
	})
}
