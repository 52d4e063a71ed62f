package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eshopsolution/admin-api/internal/api/metrics"
	"github.com/eshopsolution/admin-api/internal/core/ports"
)

// ProductHandler relays product administration to the backend catalog API.
// Catalog semantics live downstream; this layer only shapes requests.
type ProductHandler struct {
	products   ports.ProductAPIClient
	categories ports.CategoryAPIClient
}

func NewProductHandler(products ports.ProductAPIClient, categories ports.CategoryAPIClient) *ProductHandler {
	return &ProductHandler{products: products, categories: categories}
}

// List handles GET /v1/products.
//
// @Summary      Page through products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        keyword     query  string  false  "Search keyword"
// @Param        categoryId  query  int     false  "Category filter"
// @Param        pageIndex   query  int     false  "1-based page index"  default(1)
// @Param        pageSize    query  int     false  "Page size"           default(10)
// @Success      200  {object}  domain.PagedResult[ports.ProductView]
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	categoryID, _ := strconv.Atoi(c.QueryParam("categoryId"))

	page, err := h.products.GetPagings(c.Request().Context(), ports.ProductPagingInput{
		Keyword:    c.QueryParam("keyword"),
		CategoryID: categoryID,
		PageIndex:  queryInt(c, "pageIndex", 1),
		PageSize:   queryInt(c, "pageSize", 10),
	})
	if err != nil {
		metrics.CatalogRelayErrorsTotal.WithLabelValues("products").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "catalog backend unavailable")
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /v1/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	product, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		metrics.CatalogRelayErrorsTotal.WithLabelValues("products").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "catalog backend unavailable")
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /v1/products, relaying the multipart form upstream
// including the optional thumbnail image.
func (h *ProductHandler) Create(c echo.Context) error {
	input := ports.ProductCreateInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Details:     c.FormValue("details"),
		SeoTitle:    c.FormValue("seoTitle"),
		SeoAlias:    c.FormValue("seoAlias"),
	}
	if input.Name == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name is required"})
	}
	input.Price, _ = strconv.ParseFloat(c.FormValue("price"), 64)
	input.OriginalPrice, _ = strconv.ParseFloat(c.FormValue("originalPrice"), 64)
	input.Stock, _ = strconv.Atoi(c.FormValue("stock"))

	if file, err := c.FormFile("thumbnailImage"); err == nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable thumbnail"})
		}
		defer src.Close()
		input.Thumbnail = src
		input.ThumbnailName = file.Filename
	}

	ok, err := h.products.Create(c.Request().Context(), input)
	if err != nil {
		metrics.CatalogRelayErrorsTotal.WithLabelValues("products").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "catalog backend unavailable")
	}
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "product creation rejected"})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"created": true})
}

// Update handles PUT /v1/products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	input := ports.ProductUpdateInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Details:     c.FormValue("details"),
	}
	input.Price, _ = strconv.ParseFloat(c.FormValue("price"), 64)
	input.Stock, _ = strconv.Atoi(c.FormValue("stock"))
	input.CategoryID, _ = strconv.Atoi(c.FormValue("categoryId"))

	ok, err := h.products.Update(c.Request().Context(), id, input)
	if err != nil {
		metrics.CatalogRelayErrorsTotal.WithLabelValues("products").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "catalog backend unavailable")
	}
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "product update rejected"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	ok, err := h.products.Delete(c.Request().Context(), id)
	if err != nil {
		metrics.CatalogRelayErrorsTotal.WithLabelValues("products").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "catalog backend unavailable")
	}
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "product deletion rejected"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// Categories handles GET /v1/categories.
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.categories.GetAll(c.Request().Context())
	if err != nil {
		metrics.CatalogRelayErrorsTotal.WithLabelValues("categories").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "catalog backend unavailable")
	}
	return c.JSON(http.StatusOK, categories)
}
