package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"not null" json:"description"`
	Price       float64    `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int        `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Categories  []Category `gorm:"many2many:product_categories" json:"categories,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `json:"description"`
}

type Review struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProductID          uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserUUID           string    `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user" json:"user_uuid"`
	Rating             int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title              string    `gorm:"size:200;not null" json:"title"`
	Comment            string    `gorm:"not null" json:"comment"`
	HelpfulCount       int       `gorm:"not null;default:0" json:"helpful_count"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false" json:"is_verified_purchase"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserUUID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_product" json:"user_uuid"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_favorite_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ProductFilter narrows the public catalog listing.
type ProductFilter struct {
	Search     string
	CategoryID uint
	InStock    bool
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) (*[]Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id uint) error

	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) (*[]Category, error)

	CreateReview(ctx context.Context, review *Review) error
	GetReview(ctx context.Context, productID uint, userUUID string) (*Review, error)
	GetReviewByID(ctx context.Context, id uint) (*Review, error)
	ListReviews(ctx context.Context, productID uint) (*[]Review, error)
	UpdateReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, id uint) error
	IncrementHelpful(ctx context.Context, reviewID uint) error

	AddFavorite(ctx context.Context, favorite *Favorite) error
	RemoveFavorite(ctx context.Context, userUUID string, productID uint) error
	ListFavorites(ctx context.Context, userUUID string) (*[]Product, error)
	IsFavorite(ctx context.Context, userUUID string, productID uint) (bool, error)
}

type ProductUseCase interface {
	CreateProduct(ctx context.Context, product *Product, categoryIDs []uint) error
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) (*[]Product, error)
	UpdateProduct(ctx context.Context, product *Product, categoryIDs []uint) error
	DeleteProduct(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) (*[]Category, error)
	CreateCategory(ctx context.Context, category *Category) error
}

type ReviewUseCase interface {
	SubmitReview(ctx context.Context, review *Review) error
	ListReviews(ctx context.Context, productID uint) (*[]Review, error)
	DeleteReview(ctx context.Context, reviewID uint, requesterUUID string, requesterRole string) error
	MarkHelpful(ctx context.Context, reviewID uint) error

	ToggleFavorite(ctx context.Context, userUUID string, productID uint) (bool, error)
	ListFavorites(ctx context.Context, userUUID string) (*[]Product, error)
}
