package entity

import "time"

// OrderStatus estado de un pedido a proveedor.
type OrderStatus string

// Estados del ciclo de vida de un pedido.
const (
	OrderStatusDraft           OrderStatus = "draft"
	OrderStatusSent            OrderStatus = "sent"
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusPartialReceived OrderStatus = "partial_received"
	OrderStatusReceived        OrderStatus = "received"
)

// validNext define las transiciones permitidas del pedido.
// received -> pending es la reactivación explícita.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusDraft:           {OrderStatusSent: true, OrderStatusPending: true},
	OrderStatusSent:            {OrderStatusPending: true},
	OrderStatusPending:         {OrderStatusPartialReceived: true, OrderStatusReceived: true},
	OrderStatusPartialReceived: {OrderStatusReceived: true, OrderStatusPending: true},
	OrderStatusReceived:        {OrderStatusPending: true},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusPending, OrderStatusPartialReceived, OrderStatusReceived:
		return true
	}
	return false
}

// SupplierOrder es un pedido de reposición a un proveedor (cabecera + items).
type SupplierOrder struct {
	ID         string
	SupplierID string
	Status     OrderStatus
	Notes      string
	CreatedAt  time.Time
	ReceivedAt *time.Time
	Items      []*SupplierOrderItem
}

// SupplierOrderItem línea de un pedido. ReceivedQuantity solo crece: lo fijan
// las operaciones de recepción, nunca una edición ajena.
type SupplierOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	Quantity         int64
	ReceivedQuantity int64
	Received         bool
	Notes            string
}

// FullyReceived indica si el item ya reconcilió toda la cantidad pedida.
func (i *SupplierOrderItem) FullyReceived() bool {
	return i.Received || (i.Quantity > 0 && i.ReceivedQuantity >= i.Quantity)
}
