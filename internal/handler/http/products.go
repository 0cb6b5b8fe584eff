package http

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/scraper"
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ProductFetcher загружает метаданные товара по ссылке
type ProductFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*domain.ProductMetadata, error)
}

// ProductsHandler обработчик вспомогательных запросов каталога
type ProductsHandler struct {
	fetcher ProductFetcher
	log     *zap.Logger
}

// NewProductsHandler создает новый обработчик каталога
func NewProductsHandler(fetcher ProductFetcher, log *zap.Logger) *ProductsHandler {
	return &ProductsHandler{
		fetcher: fetcher,
		log:     log,
	}
}

// FetchProductRequest запрос на загрузку данных товара
type FetchProductRequest struct {
	URL string `json:"url"`
}

// FetchProduct загружает название, цену и картинку со страницы товара
//
//	@Summary	Fetch product metadata from a marketplace page
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		FetchProductRequest	true	"Product page URL"
//	@Success	200		{object}	domain.ProductMetadata
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/api/admin/products/fetch [post]
func (h *ProductsHandler) FetchProduct(w http.ResponseWriter, r *http.Request) {
	var req FetchProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeError(w, "URL is required", http.StatusBadRequest)
		return
	}

	meta, err := h.fetcher.Fetch(r.Context(), req.URL)
	switch {
	case err == nil:
		writeJSON(w, meta, http.StatusOK)
	case errors.Is(err, scraper.ErrInvalidURL):
		writeError(w, "Invalid product URL", http.StatusBadRequest)
	case errors.Is(err, scraper.ErrNoProductData):
		writeError(w, "Could not extract product data from the page", http.StatusBadRequest)
	default:
		h.log.Error("failed to fetch product", zap.String("url", req.URL), zap.Error(err))
		writeError(w, "Failed to fetch product data", http.StatusInternalServerError)
	}
}
