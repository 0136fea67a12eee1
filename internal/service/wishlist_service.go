package service

import (
	"context"

	"marketplace-client/internal/dto"
	"marketplace-client/pkg/apiclient"
)

type IWishlistService interface {
	List(ctx context.Context) ([]dto.WishlistItem, error)
	Add(ctx context.Context, productId int) error
	Remove(ctx context.Context, productId int) error
	Contains(ctx context.Context, productId int) bool
}

type wishlistService struct {
	client *apiclient.Client
}

func NewWishlistService(client *apiclient.Client) IWishlistService {
	return &wishlistService{client: client}
}

func (s *wishlistService) List(ctx context.Context) ([]dto.WishlistItem, error) {
	// The wishlist changes with every Add/Remove; a cached copy would
	// hide the user's own mutations.
	var items []dto.WishlistItem
	if err := s.client.GetUncached(ctx, "/wishlist/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *wishlistService) Add(ctx context.Context, productId int) error {
	return s.client.Post(ctx, "/wishlist/add_product/", &dto.WishlistMutationRequest{ProductId: productId}, nil)
}

func (s *wishlistService) Remove(ctx context.Context, productId int) error {
	return s.client.Post(ctx, "/wishlist/remove_product/", &dto.WishlistMutationRequest{ProductId: productId}, nil)
}

// Contains scans the wishlist for the product. Lookup failures read as
// "not in wishlist" rather than erroring the caller's render path.
func (s *wishlistService) Contains(ctx context.Context, productId int) bool {
	items, err := s.List(ctx)
	if err != nil {
		return false
	}
	for _, item := range items {
		if item.Product != nil && item.Product.Id == productId {
			return true
		}
	}
	return false
}
