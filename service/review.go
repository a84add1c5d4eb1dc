package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

var ErrNotYourReview = errors.New("review belongs to another user")

type reviewService struct {
	productRepo domain.ProductRepository
	orderRepo   domain.OrderRepository
}

func NewReviewService(productRepo domain.ProductRepository, orderRepo domain.OrderRepository) domain.ReviewUseCase {
	return &reviewService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// SubmitReview creates or updates the caller's review for a product. The
// verified-purchase flag is derived from order history, never taken from the
// request.
func (s *reviewService) SubmitReview(ctx context.Context, review *domain.Review) error {
	purchased, err := s.orderRepo.UserPurchasedProduct(ctx, review.UserUUID, review.ProductID)
	if err != nil {
		return err
	}
	review.IsVerifiedPurchase = purchased

	existing, err := s.productRepo.GetReview(ctx, review.ProductID, review.UserUUID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.productRepo.CreateReview(ctx, review)
	}
	if err != nil {
		return err
	}

	existing.Rating = review.Rating
	existing.Title = review.Title
	existing.Comment = review.Comment
	existing.IsVerifiedPurchase = purchased
	*review = *existing
	return s.productRepo.UpdateReview(ctx, existing)
}

func (s *reviewService) ListReviews(ctx context.Context, productID uint) (*[]domain.Review, error) {
	return s.productRepo.ListReviews(ctx, productID)
}

// DeleteReview lets the author, a moderator or an admin remove a review.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID uint, requesterUUID string, requesterRole string) error {
	review, err := s.productRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserUUID != requesterUUID &&
		requesterRole != domain.RoleAdmin && requesterRole != domain.RoleModerator {
		return ErrNotYourReview
	}

	return s.productRepo.DeleteReview(ctx, reviewID)
}

func (s *reviewService) MarkHelpful(ctx context.Context, reviewID uint) error {
	return s.productRepo.IncrementHelpful(ctx, reviewID)
}

func (s *reviewService) ToggleFavorite(ctx context.Context, userUUID string, productID uint) (bool, error) {
	isFavorite, err := s.productRepo.IsFavorite(ctx, userUUID, productID)
	if err != nil {
		return false, err
	}

	if isFavorite {
		if err := s.productRepo.RemoveFavorite(ctx, userUUID, productID); err != nil {
			return false, err
		}
		return false, nil
	}

	err = s.productRepo.AddFavorite(ctx, &domain.Favorite{
		UserUUID:  userUUID,
		ProductID: productID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *reviewService) ListFavorites(ctx context.Context, userUUID string) (*[]domain.Product, error) {
	return s.productRepo.ListFavorites(ctx, userUUID)
}
