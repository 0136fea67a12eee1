package dto

import "encoding/json"

type Product struct {
	Id          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Price       json.Number `json:"price,omitempty"`
	Category    string      `json:"category,omitempty"`
	Subcategory string      `json:"subcategory,omitempty"`
	Platform    string      `json:"platform,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	ProductURL  string      `json:"product_url,omitempty"`
	Rating      float64     `json:"rating,omitempty"`
	ViewCount   int         `json:"view_count,omitempty"`
}

// PaginatedProducts is the backend's standard page envelope.
type PaginatedProducts struct {
	Results []Product `json:"results"`
	Next    string    `json:"next"`
	Count   int       `json:"count"`
}

type Category struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type PaginatedCategories struct {
	Results []Category `json:"results"`
	Next    string     `json:"next"`
	Count   int        `json:"count"`
}

// ProductListParams are the optional filters for GET /products/.
type ProductListParams struct {
	Category    string
	Subcategory string
	Platform    string
	MinPrice    string
	MaxPrice    string
	Ordering    string
	Page        string
}

type FilterOptions struct {
	Platforms     []string `json:"platforms"`
	Subcategories []string `json:"subcategories"`
	PriceRanges   []string `json:"price_ranges,omitempty"`
}
