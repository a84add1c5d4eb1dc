package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).Preload("Categories").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) (*[]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{}).Preload("Categories")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.CategoryID != 0 {
		query = query.
			Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", filter.CategoryID)
	}
	if filter.InStock {
		query = query.Where("stock > 0")
	}

	var products []domain.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return &products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		return tx.Model(product).Association("Categories").Replace(product.Categories)
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

func (r *productRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *productRepository) ListCategories(ctx context.Context) (*[]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return &categories, nil
}

func (r *productRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *productRepository) GetReview(ctx context.Context, productID uint, userUUID string) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).
		First(&review, "product_id = ? AND user_uuid = ?", productID, userUUID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *productRepository) GetReviewByID(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *productRepository) ListReviews(ctx context.Context, productID uint) (*[]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return &reviews, nil
}

func (r *productRepository) UpdateReview(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *productRepository) DeleteReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error
}

func (r *productRepository) IncrementHelpful(ctx context.Context, reviewID uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
}

func (r *productRepository) AddFavorite(ctx context.Context, favorite *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *productRepository) RemoveFavorite(ctx context.Context, userUUID string, productID uint) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Favorite{}, "user_uuid = ? AND product_id = ?", userUUID, productID).Error
}

func (r *productRepository) ListFavorites(ctx context.Context, userUUID string) (*[]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites f ON f.product_id = products.id").
		Where("f.user_uuid = ?", userUUID).
		Order("f.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return &products, nil
}

func (r *productRepository) IsFavorite(ctx context.Context, userUUID string, productID uint) (bool, error) {
	var favorite domain.Favorite
	err := r.db.WithContext(ctx).
		First(&favorite, "user_uuid = ? AND product_id = ?", userUUID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
