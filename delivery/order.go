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

type OrderHandler struct {
	orderUC domain.OrderUseCase
}

func NewOrderHandler(r *gin.Engine, orderUC domain.OrderUseCase, jwtManager *utils.JWTManager) {
	handler := &OrderHandler{orderUC: orderUC}

	orders := r.Group("/orders")
	orders.Use(config.AuthMiddleware(jwtManager))
	{
		orders.POST("", handler.PlaceOrder)
		orders.GET("", handler.ListOrders)
		orders.GET("/:id", handler.GetOrder)
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	username := c.GetString("userUUID")
	order, err := h.orderUC.PlaceOrder(c.Request.Context(), username, lines)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Not enough stock for one of the requested products",
			})
		case errors.Is(err, domain.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "The order has no items",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": utils.TranslateDBError(err),
			})
		}
		return
	}

	utils.PrintLogInfo(&username, http.StatusCreated, "PlaceOrder")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderUC.ListOrders(c.Request.Context(), c.GetString("userUUID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orderUC.GetOrder(c.Request.Context(), id, c.GetString("userUUID"), c.GetString("userRole"))
	if err != nil {
		if errors.Is(err, service.ErrNotYourOrder) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You can only view your own orders",
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
