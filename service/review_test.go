package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

func newReviewFixture(t *testing.T) (*fakeProductRepo, *fakeOrderRepo, domain.ReviewUseCase, *domain.Product) {
	t.Helper()

	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewReviewService(productRepo, orderRepo)

	product := &domain.Product{Name: "Mochila", Description: "morada", Price: 25, Stock: 10}
	require.NoError(t, productRepo.CreateProduct(context.Background(), product))

	return productRepo, orderRepo, svc, product
}

func TestReviewService_ToggleAndListFavorites(t *testing.T) {
	_, _, svc, product := newReviewFixture(t)

	favorited, err := svc.ToggleFavorite(context.Background(), "uuid-dora", product.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorites, err := svc.ListFavorites(context.Background(), "uuid-dora")
	require.NoError(t, err)
	require.Len(t, *favorites, 1)
	assert.Equal(t, product.ID, (*favorites)[0].ID)

	// Another user's list stays empty.
	favorites, err = svc.ListFavorites(context.Background(), "uuid-diego")
	require.NoError(t, err)
	assert.Empty(t, *favorites)

	// Toggling again removes the favorite.
	favorited, err = svc.ToggleFavorite(context.Background(), "uuid-dora", product.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	favorites, err = svc.ListFavorites(context.Background(), "uuid-dora")
	require.NoError(t, err)
	assert.Empty(t, *favorites)
}

func TestReviewService_SubmitReviewVerifiedPurchase(t *testing.T) {
	_, orderRepo, svc, product := newReviewFixture(t)

	_, err := orderRepo.PlaceOrder(context.Background(), "uuid-dora", []domain.OrderLine{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// The buyer gets the verified flag regardless of what the request says.
	buyerReview := &domain.Review{
		ProductID: product.ID, UserUUID: "uuid-dora",
		Rating: 5, Title: "Genial", Comment: "Perfecta para viajar",
	}
	require.NoError(t, svc.SubmitReview(context.Background(), buyerReview))
	assert.True(t, buyerReview.IsVerifiedPurchase)

	otherReview := &domain.Review{
		ProductID: product.ID, UserUUID: "uuid-diego",
		Rating: 3, Title: "Normal", Comment: "Sin más", IsVerifiedPurchase: true,
	}
	require.NoError(t, svc.SubmitReview(context.Background(), otherReview))
	assert.False(t, otherReview.IsVerifiedPurchase)

	reviews, err := svc.ListReviews(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, *reviews, 2)
}

func TestReviewService_SubmitReviewUpdatesExisting(t *testing.T) {
	_, _, svc, product := newReviewFixture(t)

	first := &domain.Review{
		ProductID: product.ID, UserUUID: "uuid-dora",
		Rating: 2, Title: "Meh", Comment: "Llegó rota",
	}
	require.NoError(t, svc.SubmitReview(context.Background(), first))

	second := &domain.Review{
		ProductID: product.ID, UserUUID: "uuid-dora",
		Rating: 4, Title: "Mejor", Comment: "Me la cambiaron",
	}
	require.NoError(t, svc.SubmitReview(context.Background(), second))

	// One review per user and product: the second submit updated the first.
	reviews, err := svc.ListReviews(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, *reviews, 1)
	assert.Equal(t, 4, (*reviews)[0].Rating)
	assert.Equal(t, first.ID, second.ID)
}

func TestReviewService_DeleteReviewPermissions(t *testing.T) {
	_, _, svc, product := newReviewFixture(t)

	review := &domain.Review{
		ProductID: product.ID, UserUUID: "uuid-dora",
		Rating: 5, Title: "Genial", Comment: "Perfecta",
	}
	require.NoError(t, svc.SubmitReview(context.Background(), review))

	err := svc.DeleteReview(context.Background(), review.ID, "uuid-diego", domain.RoleUser)
	assert.ErrorIs(t, err, ErrNotYourReview)

	// A moderator can remove someone else's review.
	require.NoError(t, svc.DeleteReview(context.Background(), review.ID, "uuid-mod", domain.RoleModerator))

	reviews, err := svc.ListReviews(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, *reviews)
}
