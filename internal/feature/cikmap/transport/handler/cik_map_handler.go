// Package handler provides HTTP handlers for the cikmap feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cikmap_backend/internal/feature/cikmap/domain"
	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/feature/cikmap/transport/http/dto"
	"cikmap_backend/internal/feature/cikmap/usecase"
	platformhandler "cikmap_backend/internal/platform/http/handler"
)

// CikMapUsecase is the use case interface consumed by CikMapHandler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CikMapUsecase interface {
	Resolve(ctx context.Context, symbol string, credentials map[string]string) (entity.CikMapData, error)
	ListTickers(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error)
}

// CikMapHandler handles CIK lookups and ticker listings.
type CikMapHandler struct {
	uc CikMapUsecase
}

// NewCikMapHandler creates a new CikMapHandler.
func NewCikMapHandler(uc CikMapUsecase) *CikMapHandler {
	return &CikMapHandler{uc: uc}
}

// Resolve returns the CIK record for the symbol in the path.
// An error record is returned with 404; a null cik is a normal 200 response.
//
// Example:
// GET /cik/AAPL
func (h *CikMapHandler) Resolve(c *gin.Context) {
	data, err := h.uc.Resolve(c.Request.Context(), c.Param("symbol"), nil)
	if err != nil {
		c.JSON(platformhandler.StatusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if data.Error != "" {
		c.JSON(http.StatusNotFound, gin.H{"Error": data.Error})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ListTickers returns one SEC listing in upstream order.
//
// Example:
// GET /tickers?kind=fund
func (h *CikMapHandler) ListTickers(c *gin.Context) {
	kind := entity.ListingKind(c.DefaultQuery("kind", string(entity.KindCompany)))

	tickers, err := h.uc.ListTickers(c.Request.Context(), kind)
	if err != nil {
		status := platformhandler.StatusFromError(err)
		if errors.Is(err, domain.ErrInvalidListingKind) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.TickerItem, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, dto.TickerItem{Symbol: t.Symbol, Cik: usecase.PadCIK(t.CIK), Name: t.Name})
	}
	c.JSON(http.StatusOK, out)
}
