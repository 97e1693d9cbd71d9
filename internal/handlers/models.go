package handlers

import (
	"time"

	"sweet-shop/internal/database"
	"sweet-shop/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response
// @Description Error body returned by every failing API call
type ErrorResponse struct {
	// Error code
	// @Example "SweetNotFound"
	// @Example "InsufficientStock"
	Error string `json:"error" example:"InsufficientStock"`

	// Human-readable message
	Message string `json:"message" example:"insufficient stock available"`

	// Extra context such as the offending field
	Details string `json:"details,omitempty" example:"Available: 2, Requested: 5"`
}

// SuccessResponse represents a success response
// @Description Success response with message
type SuccessResponse struct {
	Message string `json:"message" example:"sweet 'Jalebi' deleted successfully"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"sweet-shop"`
}

// CreateSweetRequest represents the request body for adding a sweet
// @Description Request to add a sweet to the catalogue
type CreateSweetRequest struct {
	// Sweet name (non-empty)
	// @Example "Kaju Katli"
	Name string `json:"name" binding:"required" example:"Kaju Katli"`

	// Category used for grouping and search
	// @Example "Nut-Based"
	Category string `json:"category" binding:"required" example:"Nut-Based"`

	// Unit price (must be > 0)
	Price *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"50"`

	// Initial stock (must be >= 0)
	Quantity *int `json:"quantity" binding:"required" example:"20"`
}

// StockChangeRequest is the body of the purchase and restock endpoints
// @Description Number of units to purchase or restock (must be >= 1)
type StockChangeRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"5"`
}

// SweetResponse represents a sweet in API responses
type SweetResponse struct {
	ID        string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string          `json:"name" example:"Kaju Katli"`
	Category  string          `json:"category" example:"Nut-Based"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"50"`
	Quantity  int             `json:"quantity" example:"20"`
	CreatedAt string          `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string          `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// SweetListResponse wraps a list of sweets
type SweetListResponse struct {
	Sweets []SweetResponse `json:"sweets"`
	Count  int             `json:"count" example:"7"`
}

// PurchaseResponse describes a completed purchase
type PurchaseResponse struct {
	Sweet          SweetResponse   `json:"sweet"`
	Quantity       int             `json:"quantity" example:"5"`
	UnitPrice      decimal.Decimal `json:"unitPrice" swaggertype:"string" example:"10"`
	TotalCost      decimal.Decimal `json:"totalCost" swaggertype:"string" example:"50"`
	RemainingStock int             `json:"remainingStock" example:"15"`
}

// RestockResponse describes a completed restock
type RestockResponse struct {
	Sweet         SweetResponse `json:"sweet"`
	QuantityAdded int           `json:"quantityAdded" example:"10"`
	PreviousStock int           `json:"previousStock" example:"15"`
	NewStock      int           `json:"newStock" example:"25"`
}

// MovementResponse is one entry of the stock ledger
type MovementResponse struct {
	ID            string          `json:"id"`
	SweetID       string          `json:"sweetId"`
	SweetName     string          `json:"sweetName" example:"Gulab Jamun"`
	Kind          string          `json:"kind" example:"purchase"`
	Quantity      int             `json:"quantity" example:"5"`
	UnitPrice     decimal.Decimal `json:"unitPrice" swaggertype:"string" example:"10"`
	TotalCost     decimal.Decimal `json:"totalCost" swaggertype:"string" example:"50"`
	PreviousStock int             `json:"previousStock" example:"20"`
	NewStock      int             `json:"newStock" example:"15"`
	OccurredAt    string          `json:"occurredAt" example:"2024-01-15T12:00:00Z"`
}

// MovementListResponse wraps ledger entries, newest first
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Count     int                `json:"count" example:"2"`
}

func newSweetResponse(sweet domain.Sweet) SweetResponse {
	return SweetResponse{
		ID:        sweet.ID,
		Name:      sweet.Name,
		Category:  sweet.Category,
		Price:     sweet.Price,
		Quantity:  sweet.Quantity,
		CreatedAt: sweet.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sweet.UpdatedAt.Format(time.RFC3339),
	}
}

func newSweetListResponse(sweets []domain.Sweet) SweetListResponse {
	items := make([]SweetResponse, 0, len(sweets))
	for _, sweet := range sweets {
		items = append(items, newSweetResponse(sweet))
	}
	return SweetListResponse{Sweets: items, Count: len(items)}
}

func newMovementResponse(m database.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		SweetID:       m.SweetID,
		SweetName:     m.SweetName,
		Kind:          m.Kind,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalCost:     m.TotalCost,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		OccurredAt:    m.OccurredAt.Format(time.RFC3339),
	}
}
