package dto

import (
	"time"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para registrar una pieza.
// Image acepta un data URL (data:image/...;base64,...) que se sube al almacenamiento,
// o una URL ya publicada que se guarda tal cual.
type CreateItemRequest struct {
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Condition   string          `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	VendorID    string          `json:"vendor_id,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ListItemsQuery filtros del listado de inventario.
type ListItemsQuery struct {
	Status string `query:"status"` // vacío o ALL = todos
	Search string `query:"q"`      // por código o categoría
}

// ItemResponse salida de una pieza.
type ItemResponse struct {
	ID             string          `json:"id"`
	ImageURL       string          `json:"image_url"`
	Category       string          `json:"category"`
	Size           string          `json:"size"`
	Condition      string          `json:"condition"`
	ConditionLabel string          `json:"condition_label"`
	Price          decimal.Decimal `json:"price"`
	Status         string          `json:"status"`
	StatusLabel    string          `json:"status_label"`
	VendorID       string          `json:"vendor_id,omitempty"`
	Description    string          `json:"description,omitempty"`
	EntryDate      time.Time       `json:"entry_date"`
	SoldAt         *time.Time      `json:"sold_at,omitempty"`
}

// NewItemResponse mapea la entidad a su salida.
func NewItemResponse(i *entity.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:             i.ID,
		ImageURL:       i.ImageURL,
		Category:       i.Category,
		Size:           i.Size,
		Condition:      string(i.Condition),
		ConditionLabel: i.Condition.Label(),
		Price:          i.Price,
		Status:         string(i.Status),
		StatusLabel:    i.Status.Label(),
		VendorID:       i.VendorID,
		Description:    i.Description,
		EntryDate:      i.EntryDate,
		SoldAt:         i.SoldAt,
	}
}

// NewItemResponses mapea un listado.
func NewItemResponses(items []*entity.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewItemResponse(i))
	}
	return out
}
