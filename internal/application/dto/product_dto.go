package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Barcode      *string         `json:"barcode,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"min_stock"`
	DepartmentID *string         `json:"department_id,omitempty"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Active       bool            `json:"active"`
}

// UpdateProductRequest body para PUT /api/products/:id. No toca Stock ni Cost:
// esos cambian solo vía libro de transacciones, ajustes y recepciones.
// ExpectedVersion (opcional) hace la edición condicional: si la fila cambió,
// se responde conflicto en lugar de pisar la edición ajena.
type UpdateProductRequest struct {
	Name            string          `json:"name"`
	Barcode         *string         `json:"barcode,omitempty"`
	Price           decimal.Decimal `json:"price"`
	MinStock        int64           `json:"min_stock"`
	DepartmentID    *string         `json:"department_id,omitempty"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	Active          bool            `json:"active"`
	ExpectedVersion *int64          `json:"expected_version,omitempty"`
}

// QuickReceiveRequest body para POST /api/products/quick-receive.
type QuickReceiveRequest struct {
	Barcode  string           `json:"barcode"`
	Quantity int64            `json:"quantity"`
	NewCost  *decimal.Decimal `json:"new_cost,omitempty"`
	NewPrice *decimal.Decimal `json:"new_price,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      *string         `json:"barcode,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"min_stock"`
	DepartmentID *string         `json:"department_id,omitempty"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Active       bool            `json:"active"`
	LowStock     bool            `json:"low_stock"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
