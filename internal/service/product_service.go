package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"marketplace-client/internal/dto"
	"marketplace-client/internal/pkg/logger"
	"marketplace-client/pkg/apiclient"
)

type IProductService interface {
	List(ctx context.Context, params *dto.ProductListParams) (*dto.PaginatedProducts, error)
	Get(ctx context.Context, id int) (*dto.Product, error)
	Search(ctx context.Context, query string, limit int) (*dto.PaginatedProducts, error)
	Suggestions(ctx context.Context, query string, limit int) ([]string, error)
	AISearch(ctx context.Context, query string, limit int) (*dto.PaginatedProducts, error)
	HybridSearch(ctx context.Context, query string, limit int) (*dto.PaginatedProducts, error)
	Trending(ctx context.Context) ([]dto.Product, error)
	Platforms(ctx context.Context, category, subcategory string) ([]string, error)
	FilterOptions(ctx context.Context, mainCategory, subcategory string) (*dto.FilterOptions, error)
	TrackView(ctx context.Context, id int)
}

type productService struct {
	client *apiclient.Client
	log    logger.ILogger
}

func NewProductService(client *apiclient.Client, log logger.ILogger) IProductService {
	return &productService{client: client, log: log}
}

func (s *productService) List(ctx context.Context, params *dto.ProductListParams) (*dto.PaginatedProducts, error) {
	query := url.Values{}
	if params != nil {
		setIfPresent(query, "category", params.Category)
		setIfPresent(query, "subcategory", params.Subcategory)
		setIfPresent(query, "platform", params.Platform)
		setIfPresent(query, "min_price", params.MinPrice)
		setIfPresent(query, "max_price", params.MaxPrice)
		setIfPresent(query, "ordering", params.Ordering)
		setIfPresent(query, "page", params.Page)
	}

	var page dto.PaginatedProducts
	if err := s.client.Get(ctx, "/products/", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *productService) Get(ctx context.Context, id int) (*dto.Product, error) {
	var product dto.Product
	if err := s.client.Get(ctx, fmt.Sprintf("/products/%d/", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Search(ctx context.Context, query string, limit int) (*dto.PaginatedProducts, error) {
	return s.searchOn(ctx, "/products/search/", query, limit)
}

func (s *productService) AISearch(ctx context.Context, query string, limit int) (*dto.PaginatedProducts, error) {
	return s.searchOn(ctx, "/products/ai_search/", query, limit)
}

func (s *productService) HybridSearch(ctx context.Context, query string, limit int) (*dto.PaginatedProducts, error) {
	return s.searchOn(ctx, "/products/hybrid_search/", query, limit)
}

func (s *productService) searchOn(ctx context.Context, endpoint, query string, limit int) (*dto.PaginatedProducts, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page dto.PaginatedProducts
	if err := s.client.Get(ctx, endpoint, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *productService) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var suggestions []string
	if err := s.client.Get(ctx, "/products/search_suggestions/", q, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (s *productService) Trending(ctx context.Context) ([]dto.Product, error) {
	var products []dto.Product
	if err := s.client.Get(ctx, "/products/trending/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) Platforms(ctx context.Context, category, subcategory string) ([]string, error) {
	q := url.Values{}
	setIfPresent(q, "category", category)
	setIfPresent(q, "subcategory", subcategory)

	var platforms []string
	if err := s.client.Get(ctx, "/products/platforms/", q, &platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

func (s *productService) FilterOptions(ctx context.Context, mainCategory, subcategory string) (*dto.FilterOptions, error) {
	q := url.Values{}
	setIfPresent(q, "main_category", mainCategory)
	setIfPresent(q, "subcategory", subcategory)

	var options dto.FilterOptions
	if err := s.client.Get(ctx, "/products/filter_options/", q, &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// TrackView reports a product view. Tracking is best effort; a failure is
// logged and swallowed so it never breaks the browsing flow.
func (s *productService) TrackView(ctx context.Context, id int) {
	if err := s.client.Post(ctx, fmt.Sprintf("/products/%d/track_view/", id), nil, nil); err != nil {
		s.log.Warn("products", "view tracking failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
	}
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
