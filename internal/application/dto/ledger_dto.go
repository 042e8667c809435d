package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea de venta o devolución. Quantity siempre positivo
// en el request; el caso de uso aplica la convención de signos al persistir.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	Lines           []SaleLineRequest `json:"lines"`
	PaymentMethodID *string           `json:"payment_method_id,omitempty"`
}

// RecordReturnRequest body para POST /api/returns.
type RecordReturnRequest struct {
	Lines  []SaleLineRequest `json:"lines"`
	Reason string            `json:"reason,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}

// EntryResponse respuesta de creación de un asiento.
type EntryResponse struct {
	EntryID string          `json:"entry_id"`
	Kind    string          `json:"kind"`
	Total   decimal.Decimal `json:"total"`
}

// AdjustStockRequest body para POST /api/products/:id/adjust-stock.
type AdjustStockRequest struct {
	Delta int64 `json:"delta"`
}

// AdjustStockResponse stock resultante tras un ajuste manual.
type AdjustStockResponse struct {
	ProductID string `json:"product_id"`
	NewStock  int64  `json:"new_stock"`
}

// LedgerLineDTO línea de un asiento con el nombre del producto resuelto.
type LedgerLineDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// EntryDetailDTO asiento completo para GET /api/sales/:id.
type EntryDetailDTO struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethodID *string         `json:"payment_method_id,omitempty"`
	UserID          string          `json:"user_id"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Lines           []LedgerLineDTO `json:"lines"`
}
