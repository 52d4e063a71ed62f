package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/eshopsolution/admin-api/internal/core/domain"
	"github.com/eshopsolution/admin-api/internal/core/ports"
)

// ProductClient relays product operations to the backend catalog API.
type ProductClient struct {
	*Client
}

func NewProductClient(base *Client) *ProductClient {
	return &ProductClient{Client: base}
}

// GetPagings fetches one page of products, optionally filtered by keyword
// and category.
func (c *ProductClient) GetPagings(ctx context.Context, input ports.ProductPagingInput) (*domain.PagedResult[ports.ProductView], error) {
	q := url.Values{}
	q.Set("pageIndex", strconv.Itoa(input.PageIndex))
	q.Set("pageSize", strconv.Itoa(input.PageSize))
	if input.Keyword != "" {
		q.Set("keyword", input.Keyword)
	}
	if input.CategoryID != 0 {
		q.Set("categoryId", strconv.Itoa(input.CategoryID))
	}

	var page domain.PagedResult[ports.ProductView]
	if err := c.getJSON(ctx, "/api/products/paging?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *ProductClient) GetByID(ctx context.Context, id int) (*ports.ProductView, error) {
	var product ports.ProductView
	if err := c.getJSON(ctx, fmt.Sprintf("/api/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create relays a product creation as multipart form data, streaming the
// thumbnail image when one is supplied.
func (c *ProductClient) Create(ctx context.Context, input ports.ProductCreateInput) (bool, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if input.Thumbnail != nil {
		part, err := writer.CreateFormFile("thumbnailImage", input.ThumbnailName)
		if err != nil {
			return false, fmt.Errorf("create product: thumbnail part: %w", err)
		}
		if _, err := io.Copy(part, input.Thumbnail); err != nil {
			return false, fmt.Errorf("create product: copy thumbnail: %w", err)
		}
	}

	fields := map[string]string{
		"name":          input.Name,
		"price":         strconv.FormatFloat(input.Price, 'f', -1, 64),
		"originalPrice": strconv.FormatFloat(input.OriginalPrice, 'f', -1, 64),
		"stock":         strconv.Itoa(input.Stock),
		"description":   input.Description,
		"details":       input.Details,
		"seoTitle":      input.SeoTitle,
		"seoAlias":      input.SeoAlias,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return false, fmt.Errorf("create product: field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return false, fmt.Errorf("create product: %w", err)
	}

	return c.send(ctx, http.MethodPost, "/api/products/", writer.FormDataContentType(), &buf)
}

// Update relays the mutable product fields as multipart form data.
func (c *ProductClient) Update(ctx context.Context, id int, input ports.ProductUpdateInput) (bool, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        input.Name,
		"price":       strconv.FormatFloat(input.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(input.Stock),
		"description": input.Description,
		"details":     input.Details,
		"categoryId":  strconv.Itoa(input.CategoryID),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return false, fmt.Errorf("update product: field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}

	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), writer.FormDataContentType(), &buf)
}

func (c *ProductClient) Delete(ctx context.Context, id int) (bool, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), "", nil)
}
