package handlers

import (
	"fmt"
	"net/http"

	"sweet-shop/internal/commands"
	"sweet-shop/internal/config"
	"sweet-shop/internal/domain"
	"sweet-shop/internal/inventory"
	"sweet-shop/internal/queries"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dashboardTemplate = "index.html"

// dashboardView is the data rendered by the dashboard template
type dashboardView struct {
	Sweets       []domain.Sweet
	Summary      inventory.Summary
	Flashes      []Flash
	Searching    bool
	SearchType   string
	SearchQuery  string
	ErrorMessage string
}

// WebHandler serves the form based dashboard. Every POST redirects back
// to the dashboard with a flash message.
type WebHandler struct {
	logger            *zap.Logger
	store             *inventory.Store
	commands          *commands.Handler
	summaries         *queries.SummaryReader
	lowStockThreshold int
	currencySymbol    string
}

func NewWebHandler(
	logger *zap.Logger,
	cfg *config.Config,
	store *inventory.Store,
	cmds *commands.Handler,
	summaries *queries.SummaryReader,
) *WebHandler {
	return &WebHandler{
		logger:            logger,
		store:             store,
		commands:          cmds,
		summaries:         summaries,
		lowStockThreshold: cfg.LowStockThreshold,
		currencySymbol:    cfg.CurrencySymbol,
	}
}

// Index handles GET /
func (h *WebHandler) Index(c *gin.Context) {
	view := dashboardView{
		Flashes:    popFlashes(c),
		SearchType: SearchByName,
	}

	sweets, err := h.store.All(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		view.ErrorMessage = "Error loading dashboard."
		c.HTML(http.StatusInternalServerError, dashboardTemplate, view)
		return
	}
	view.Sweets = sweets

	if !h.loadSummary(c, &view) {
		c.HTML(http.StatusInternalServerError, dashboardTemplate, view)
		return
	}
	c.HTML(http.StatusOK, dashboardTemplate, view)
}

// AddSweet handles POST /add_sweet
func (h *WebHandler) AddSweet(c *gin.Context) {
	price, err := parsePrice(c.PostForm("price"))
	if err != nil {
		h.redirectWithError(c, "Error adding sweet", err)
		return
	}
	quantity, err := parseQuantity(c.PostForm("quantity"))
	if err != nil {
		h.redirectWithError(c, "Error adding sweet", err)
		return
	}

	sweet, err := h.commands.AddSweet(c.Request.Context(), commands.AddSweetCommand{
		Name:     c.PostForm("name"),
		Category: c.PostForm("category"),
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		h.redirectWithError(c, "Error adding sweet", err)
		return
	}

	h.redirect(c, FlashSuccess, fmt.Sprintf("Sweet '%s' added successfully! ID: %s", sweet.Name, sweet.ID))
}

// DeleteSweet handles POST /delete_sweet/:id
func (h *WebHandler) DeleteSweet(c *gin.Context) {
	sweet, err := h.commands.DeleteSweet(c.Request.Context(), commands.DeleteSweetCommand{ID: c.Param("id")})
	switch {
	case err == nil:
		h.redirect(c, FlashSuccess, fmt.Sprintf("Sweet '%s' deleted successfully!", sweet.Name))
	case domain.IsNotFound(err):
		h.redirect(c, FlashError, "Sweet not found.")
	default:
		h.logger.Error("Failed to delete sweet", zap.String("sweet_id", c.Param("id")), zap.Error(err))
		h.redirect(c, FlashError, "An error occurred while deleting the sweet.")
	}
}

// Search handles GET /search and renders the results in the dashboard
func (h *WebHandler) Search(c *gin.Context) {
	searchType := c.DefaultQuery("type", SearchByName)
	query := c.Query("query")

	sweets, err := searchSweets(c.Request.Context(), h.store, searchType, query)
	if err != nil {
		if domain.IsValidation(err) {
			h.redirect(c, FlashError, err.Error())
			return
		}
		h.logger.Error("Search failed", zap.String("type", searchType), zap.Error(err))
		h.redirect(c, FlashError, "Error searching sweets.")
		return
	}

	view := dashboardView{
		Sweets:      sweets,
		Flashes:     popFlashes(c),
		Searching:   true,
		SearchType:  searchType,
		SearchQuery: query,
	}
	if !h.loadSummary(c, &view) {
		c.HTML(http.StatusInternalServerError, dashboardTemplate, view)
		return
	}
	c.HTML(http.StatusOK, dashboardTemplate, view)
}

// Purchase handles POST /purchase
func (h *WebHandler) Purchase(c *gin.Context) {
	quantity, err := parseQuantity(c.PostForm("quantity"))
	if err != nil {
		h.redirectWithError(c, "Invalid purchase quantity", err)
		return
	}

	receipt, err := h.commands.PurchaseSweet(c.Request.Context(), commands.PurchaseSweetCommand{
		ID:       c.PostForm("sweet_id"),
		Quantity: quantity,
	})
	if err != nil {
		h.redirectWithError(c, "Invalid purchase quantity", err)
		return
	}

	h.redirect(c, FlashSuccess, fmt.Sprintf("Purchased %d x %s for %s%s. Remaining stock: %d",
		receipt.Quantity, receipt.Sweet.Name, h.currencySymbol, receipt.TotalCost.StringFixed(2), receipt.RemainingStock))
}

// Restock handles POST /restock
func (h *WebHandler) Restock(c *gin.Context) {
	quantity, err := parseQuantity(c.PostForm("quantity"))
	if err != nil {
		h.redirectWithError(c, "Invalid restock quantity", err)
		return
	}

	receipt, err := h.commands.RestockSweet(c.Request.Context(), commands.RestockSweetCommand{
		ID:       c.PostForm("sweet_id"),
		Quantity: quantity,
	})
	if err != nil {
		h.redirectWithError(c, "Invalid restock quantity", err)
		return
	}

	h.redirect(c, FlashSuccess, fmt.Sprintf("Restocked %d x %s. New stock: %d",
		receipt.QuantityAdded, receipt.Sweet.Name, receipt.NewStock))
}

// NotFound renders the dashboard shell for unknown pages
func (h *WebHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, dashboardTemplate, dashboardView{
		SearchType:   SearchByName,
		ErrorMessage: "Page not found",
	})
}

func (h *WebHandler) loadSummary(c *gin.Context, view *dashboardView) bool {
	summary, err := h.summaries.Summary(c.Request.Context(), h.lowStockThreshold)
	if err != nil {
		h.logger.Error("Failed to load statistics", zap.Error(err))
		view.ErrorMessage = "Error loading dashboard."
		return false
	}
	view.Summary = summary
	return true
}

// redirectWithError flashes domain failures with their own message.
// Validation failures get prefix; anything else is logged and hidden.
func (h *WebHandler) redirectWithError(c *gin.Context, prefix string, err error) {
	switch {
	case domain.IsValidation(err):
		h.redirect(c, FlashError, fmt.Sprintf("%s: %s", prefix, err.Error()))
	case domain.IsNotFound(err), domain.IsInsufficientStock(err):
		h.redirect(c, FlashError, err.Error())
	default:
		h.logger.Error("Form request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		h.redirect(c, FlashError, "An unexpected error occurred.")
	}
}

func (h *WebHandler) redirect(c *gin.Context, kind, message string) {
	setFlash(c, kind, message)
	c.Redirect(http.StatusSeeOther, "/")
}
