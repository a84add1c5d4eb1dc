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

type ProductHandler struct {
	productUC domain.ProductUseCase
	reviewUC  domain.ReviewUseCase
}

func NewProductHandler(r *gin.Engine, productUC domain.ProductUseCase, reviewUC domain.ReviewUseCase, jwtManager *utils.JWTManager) {
	handler := &ProductHandler{productUC: productUC, reviewUC: reviewUC}

	public := r.Group("/products")
	{
		public.GET("", handler.ListProducts)
		public.GET("/:id", handler.GetProduct)
		public.GET("/:id/reviews", handler.ListReviews)
	}
	r.GET("/categories", handler.ListCategories)

	authed := r.Group("/products")
	authed.Use(config.AuthMiddleware(jwtManager))
	{
		authed.POST("/:id/reviews", handler.SubmitReview)
		authed.POST("/:id/favorite", handler.ToggleFavorite)
	}

	reviews := r.Group("/reviews")
	{
		reviews.POST("/:id/helpful", handler.MarkHelpful)
	}
	authedReviews := r.Group("/reviews")
	authedReviews.Use(config.AuthMiddleware(jwtManager))
	{
		authedReviews.DELETE("/:id", handler.DeleteReview)
	}

	favorites := r.Group("/favorites")
	favorites.Use(config.AuthMiddleware(jwtManager))
	favorites.GET("", handler.ListFavorites)

	admin := r.Group("/admin")
	admin.Use(config.AuthMiddleware(jwtManager), config.RequireRole(domain.RoleAdmin, domain.RoleModerator))
	{
		admin.POST("/products", handler.CreateProduct)
		admin.PUT("/products/:id", handler.UpdateProduct)
		admin.DELETE("/products/:id", handler.DeleteProduct)
		admin.POST("/categories", handler.CreateCategory)
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid id in path",
		})
		return 0, false
	}
	return uint(id), true
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Search:  c.Query("search"),
		InStock: c.Query("in_stock") == "true",
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	products, err := h.productUC.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.productUC.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productUC.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := h.productUC.CreateProduct(c.Request.Context(), product, req.CategoryIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := h.productUC.UpdateProduct(c.Request.Context(), product, req.CategoryIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.productUC.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.productUC.CreateCategory(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"category": category,
	})
}

func (h *ProductHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.reviewUC.ListReviews(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
	})
}

func (h *ProductHandler) SubmitReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	review := &domain.Review{
		ProductID: id,
		UserUUID:  c.GetString("userUUID"),
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	}
	if err := h.reviewUC.SubmitReview(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review":  review,
	})
}

func (h *ProductHandler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.reviewUC.DeleteReview(c.Request.Context(), id, c.GetString("userUUID"), c.GetString("userRole"))
	if err != nil {
		if errors.Is(err, service.ErrNotYourReview) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You can only delete your own reviews",
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
		"message": "Review deleted",
	})
}

func (h *ProductHandler) MarkHelpful(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewUC.MarkHelpful(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thanks for the feedback",
	})
}

func (h *ProductHandler) ToggleFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	favorited, err := h.reviewUC.ToggleFavorite(c.Request.Context(), c.GetString("userUUID"), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"favorited": favorited,
	})
}

func (h *ProductHandler) ListFavorites(c *gin.Context) {
	products, err := h.reviewUC.ListFavorites(c.Request.Context(), c.GetString("userUUID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": utils.TranslateDBError(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"favorites": products,
	})
}
