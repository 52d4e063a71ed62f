package ports

import (
	"context"
	"io"

	"github.com/eshopsolution/admin-api/internal/core/domain"
)

// ProductView mirrors the product representation the backend catalog API
// returns; the admin service never owns catalog data.
type ProductView struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Stock         int     `json:"stock"`
	Description   string  `json:"description"`
	Details       string  `json:"details"`
	CategoryID    int     `json:"category_id"`
}

// CategoryView is a backend catalog category.
type CategoryView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductPagingInput selects one page of products from the backend API.
type ProductPagingInput struct {
	Keyword    string
	CategoryID int
	PageIndex  int
	PageSize   int
}

// ProductCreateInput is relayed to the backend API as multipart form data;
// Thumbnail, when non-nil, is streamed as the thumbnail image part.
type ProductCreateInput struct {
	Name          string
	Price         float64
	OriginalPrice float64
	Stock         int
	Description   string
	Details       string
	SeoTitle      string
	SeoAlias      string
	ThumbnailName string
	Thumbnail     io.Reader
}

// ProductUpdateInput carries the mutable product fields.
type ProductUpdateInput struct {
	Name        string
	Price       float64
	Stock       int
	Description string
	Details     string
	CategoryID  int
}

// ProductAPIClient is the contract of the backend catalog product API. The
// admin service only relays requests; catalog semantics live downstream.
type ProductAPIClient interface {
	GetPagings(ctx context.Context, input ProductPagingInput) (*domain.PagedResult[ProductView], error)
	GetByID(ctx context.Context, id int) (*ProductView, error)
	Create(ctx context.Context, input ProductCreateInput) (bool, error)
	Update(ctx context.Context, id int, input ProductUpdateInput) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// CategoryAPIClient is the contract of the backend catalog category API.
type CategoryAPIClient interface {
	GetAll(ctx context.Context) ([]CategoryView, error)
}
