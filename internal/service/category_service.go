package service

import (
	"context"
	"fmt"

	"marketplace-client/internal/dto"
	"marketplace-client/pkg/apiclient"
)

type ICategoryService interface {
	List(ctx context.Context) ([]dto.Category, error)
	Get(ctx context.Context, id int) (*dto.Category, error)
}

type categoryService struct {
	client *apiclient.Client
}

func NewCategoryService(client *apiclient.Client) ICategoryService {
	return &categoryService{client: client}
}

// List follows the {results, next, count} pagination chain until the
// backend reports no next page, concatenating all results.
func (s *categoryService) List(ctx context.Context) ([]dto.Category, error) {
	var all []dto.Category
	next := "/categories/"

	for next != "" {
		var page dto.PaginatedCategories
		if err := s.client.Get(ctx, next, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		next = page.Next // absolute URL passed through by the gateway
	}

	return all, nil
}

func (s *categoryService) Get(ctx context.Context, id int) (*dto.Category, error) {
	var category dto.Category
	if err := s.client.Get(ctx, fmt.Sprintf("/categories/%d/", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
