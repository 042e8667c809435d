package dto

import "time"

// CreateOrderRequest body para POST /api/supplier-orders.
type CreateOrderRequest struct {
	SupplierID string `json:"supplier_id"`
	Notes      string `json:"notes,omitempty"`
}

// AddOrderItemRequest body para POST /api/supplier-orders/:id/items.
type AddOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateOrderItemRequest body para PUT /api/supplier-orders/:id/items/:itemId.
// Campos nil no se tocan. ReceivedQuantity es acumulado y solo puede crecer.
type UpdateOrderItemRequest struct {
	Quantity         *int64  `json:"quantity,omitempty"`
	ReceivedQuantity *int64  `json:"received_quantity,omitempty"`
	Received         *bool   `json:"received,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// MarkReceivedRequest body para POST /api/supplier-orders/:id/receive.
// ReceivedQuantity > 0 solo es válido en pedidos de un único item.
type MarkReceivedRequest struct {
	ReceivedQuantity int64 `json:"received_quantity"`
}

// UpdateOrderStatusRequest body para PUT /api/supplier-orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ChangeSupplierRequest body para duplicar o mover un pedido a otro proveedor.
type ChangeSupplierRequest struct {
	SupplierID string `json:"supplier_id"`
}

// OrderItemDTO item de pedido en respuestas.
type OrderItemDTO struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	Quantity         int64  `json:"quantity"`
	ReceivedQuantity int64  `json:"received_quantity"`
	Received         bool   `json:"received"`
	Notes            string `json:"notes,omitempty"`
}

// OrderDTO pedido completo en respuestas.
type OrderDTO struct {
	ID         string         `json:"id"`
	SupplierID string         `json:"supplier_id"`
	Status     string         `json:"status"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	ReceivedAt *time.Time     `json:"received_at,omitempty"`
	Items      []OrderItemDTO `json:"items"`
}

// AddDraftRequest body para POST /api/supplier-orders/drafts.
type AddDraftRequest struct {
	ProductID  string  `json:"product_id"`
	SupplierID *string `json:"supplier_id,omitempty"`
	Quantity   int64   `json:"quantity"`
	Notes      string  `json:"notes,omitempty"`
}

// UpdateDraftRequest body para PUT /api/supplier-orders/drafts/:id.
type UpdateDraftRequest struct {
	Quantity   int64   `json:"quantity"`
	SupplierID *string `json:"supplier_id,omitempty"`
}

// CommitDraftsRequest body para POST /api/supplier-orders/create-from-drafts.
type CommitDraftsRequest struct {
	SupplierID string   `json:"supplier_id"`
	DraftIDs   []string `json:"draft_ids"`
}

// DraftDTO borrador en respuestas.
type DraftDTO struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	SupplierID *string   `json:"supplier_id,omitempty"`
	Quantity   int64     `json:"quantity"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
