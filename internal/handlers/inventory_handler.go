package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"sweet-shop/internal/commands"
	"sweet-shop/internal/config"
	"sweet-shop/internal/database"
	"sweet-shop/internal/domain"
	"sweet-shop/internal/inventory"
	"sweet-shop/internal/queries"
	apperrors "sweet-shop/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultMovementLimit = 50

// MovementLister reads the stock ledger
type MovementLister interface {
	ListMovements(ctx context.Context, sweetID string, limit int) ([]database.Movement, error)
}

// InventoryHandler serves the JSON API. Failures are attached with
// c.Error and rendered by middleware.ErrorHandler.
type InventoryHandler struct {
	logger            *zap.Logger
	store             *inventory.Store
	commands          *commands.Handler
	summaries         *queries.SummaryReader
	ledger            MovementLister
	serviceName       string
	lowStockThreshold int
}

func NewInventoryHandler(
	logger *zap.Logger,
	cfg *config.Config,
	store *inventory.Store,
	cmds *commands.Handler,
	summaries *queries.SummaryReader,
	ledger MovementLister,
) *InventoryHandler {
	return &InventoryHandler{
		logger:            logger,
		store:             store,
		commands:          cmds,
		summaries:         summaries,
		ledger:            ledger,
		serviceName:       cfg.ServiceName,
		lowStockThreshold: cfg.LowStockThreshold,
	}
}

// Health handles GET /api/v1/health
// @Summary      Health check endpoint
// @Description  Returns the service status and name.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *InventoryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: h.serviceName,
	})
}

// ListSweets handles GET /api/v1/sweets
// @Summary      List all sweets
// @Description  Returns every sweet in insertion order.
// @Tags         sweets
// @Produce      json
// @Success      200  {object}  SweetListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /sweets [get]
func (h *InventoryHandler) ListSweets(c *gin.Context) {
	sweets, err := h.store.All(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newSweetListResponse(sweets))
}

// CreateSweet handles POST /api/v1/sweets
// @Summary      Add a sweet
// @Description  Adds a sweet to the catalogue. Name and category must be non-empty, price positive and quantity >= 0.
// @Description  **Idempotency**: repeating a request with the same X-Request-ID replays the stored response.
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string              false  "Request ID for idempotency"
// @Param        request       body      CreateSweetRequest  true   "Sweet to add"
// @Success      201           {object}  SweetResponse
// @Failure      400           {object}  ErrorResponse  "Malformed body or validation failure"
// @Failure      500           {object}  ErrorResponse
// @Router       /sweets [post]
func (h *InventoryHandler) CreateSweet(c *gin.Context) {
	var req CreateSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		_ = c.Error(apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	sweet, err := h.commands.AddSweet(c.Request.Context(), commands.AddSweetCommand{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, newSweetResponse(sweet))
}

// GetSweet handles GET /api/v1/sweets/:id
// @Summary      Get a sweet
// @Tags         sweets
// @Produce      json
// @Param        id   path      string  true  "Sweet ID"
// @Success      200  {object}  SweetResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /sweets/{id} [get]
func (h *InventoryHandler) GetSweet(c *gin.Context) {
	sweet, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newSweetResponse(sweet))
}

// DeleteSweet handles DELETE /api/v1/sweets/:id
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for idempotency"
// @Param        id            path      string  true   "Sweet ID"
// @Success      200           {object}  SuccessResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /sweets/{id} [delete]
func (h *InventoryHandler) DeleteSweet(c *gin.Context) {
	sweet, err := h.commands.DeleteSweet(c.Request.Context(), commands.DeleteSweetCommand{ID: c.Param("id")})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: fmt.Sprintf("sweet '%s' deleted successfully", sweet.Name),
	})
}

// SearchSweets handles GET /api/v1/sweets/search
// @Summary      Search sweets
// @Description  type=name and type=category match case-insensitive substrings. type=price_range expects query "<min>-<max>" with inclusive bounds.
// @Description  An empty query returns no sweets.
// @Tags         sweets
// @Produce      json
// @Param        type   query     string  false  "Search mode"  Enums(name, category, price_range)  default(name)
// @Param        query  query     string  false  "Search term"  example(10-50)
// @Success      200    {object}  SweetListResponse
// @Failure      400    {object}  ErrorResponse  "Unknown type, malformed or inverted price range"
// @Router       /sweets/search [get]
func (h *InventoryHandler) SearchSweets(c *gin.Context) {
	sweets, err := searchSweets(c.Request.Context(), h.store, c.Query("type"), c.Query("query"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newSweetListResponse(sweets))
}

// PurchaseSweet handles POST /api/v1/sweets/:id/purchase
// @Summary      Purchase a sweet
// @Description  Removes units from stock. Fails without changes when the quantity is not positive or exceeds the stock.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string              false  "Request ID for idempotency"
// @Param        id            path      string              true   "Sweet ID"
// @Param        request       body      StockChangeRequest  true   "Units to purchase"
// @Success      200           {object}  PurchaseResponse
// @Failure      400           {object}  ErrorResponse  "Validation failure or insufficient stock"
// @Failure      404           {object}  ErrorResponse
// @Router       /sweets/{id}/purchase [post]
func (h *InventoryHandler) PurchaseSweet(c *gin.Context) {
	var req StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	receipt, err := h.commands.PurchaseSweet(c.Request.Context(), commands.PurchaseSweetCommand{
		ID:       c.Param("id"),
		Quantity: *req.Quantity,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PurchaseResponse{
		Sweet:          newSweetResponse(receipt.Sweet),
		Quantity:       receipt.Quantity,
		UnitPrice:      receipt.UnitPrice,
		TotalCost:      receipt.TotalCost,
		RemainingStock: receipt.RemainingStock,
	})
}

// RestockSweet handles POST /api/v1/sweets/:id/restock
// @Summary      Restock a sweet
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string              false  "Request ID for idempotency"
// @Param        id            path      string              true   "Sweet ID"
// @Param        request       body      StockChangeRequest  true   "Units to add"
// @Success      200           {object}  RestockResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /sweets/{id}/restock [post]
func (h *InventoryHandler) RestockSweet(c *gin.Context) {
	var req StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}

	receipt, err := h.commands.RestockSweet(c.Request.Context(), commands.RestockSweetCommand{
		ID:       c.Param("id"),
		Quantity: *req.Quantity,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, RestockResponse{
		Sweet:         newSweetResponse(receipt.Sweet),
		QuantityAdded: receipt.QuantityAdded,
		PreviousStock: receipt.PreviousStock,
		NewStock:      receipt.NewStock,
	})
}

// ListMovements handles GET /api/v1/sweets/:id/movements
// @Summary      Stock movements of a sweet
// @Description  Purchases and restocks recorded in the ledger, newest first. History outlives deleted sweets.
// @Tags         stock
// @Produce      json
// @Param        id     path      string  true   "Sweet ID"
// @Param        limit  query     int     false  "Maximum entries"  default(50)
// @Success      200    {object}  MovementListResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /sweets/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	limit := defaultMovementLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			_ = c.Error(domain.NewValidationError("limit", "limit must be a positive whole number"))
			return
		}
		limit = n
	}

	movements, err := h.ledger.ListMovements(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, newMovementResponse(m))
	}
	c.JSON(http.StatusOK, MovementListResponse{Movements: items, Count: len(items)})
}

// Stats handles GET /api/v1/stats
// @Summary      Dashboard statistics
// @Description  Totals, categories, average price and low-stock count. The threshold defaults to the configured value.
// @Tags         stats
// @Produce      json
// @Param        threshold  query     int  false  "Low-stock threshold"
// @Success      200        {object}  inventory.Summary
// @Failure      400        {object}  ErrorResponse
// @Router       /stats [get]
func (h *InventoryHandler) Stats(c *gin.Context) {
	threshold := h.lowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(domain.NewValidationError("threshold", "threshold must be a whole number"))
			return
		}
		threshold = n
	}

	summary, err := h.summaries.Summary(c.Request.Context(), threshold)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
