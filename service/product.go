package service

import (
	"context"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

type productService struct {
	productRepo domain.ProductRepository
}

func NewProductService(productRepo domain.ProductRepository) domain.ProductUseCase {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product, categoryIDs []uint) error {
	product.Categories = categoriesFromIDs(categoryIDs)
	return s.productRepo.CreateProduct(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.productRepo.GetProductByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) (*[]domain.Product, error) {
	return s.productRepo.ListProducts(ctx, filter)
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product, categoryIDs []uint) error {
	product.Categories = categoriesFromIDs(categoryIDs)
	return s.productRepo.UpdateProduct(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	return s.productRepo.DeleteProduct(ctx, id)
}

func (s *productService) ListCategories(ctx context.Context) (*[]domain.Category, error) {
	return s.productRepo.ListCategories(ctx)
}

func (s *productService) CreateCategory(ctx context.Context, category *domain.Category) error {
	return s.productRepo.CreateCategory(ctx, category)
}

func categoriesFromIDs(ids []uint) []domain.Category {
	categories := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, domain.Category{ID: id})
	}
	return categories
}
