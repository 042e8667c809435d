package repository

import (
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// SupplierOrderRepository puerto de persistencia de pedidos a proveedor.
type SupplierOrderRepository interface {
	Create(order *entity.SupplierOrder) error
	GetByID(id string) (*entity.SupplierOrder, error)
	GetForUpdate(id string) (*entity.SupplierOrder, error)
	List(status *entity.OrderStatus) ([]*entity.SupplierOrder, error)
	UpdateStatus(id string, status entity.OrderStatus, receivedAt *time.Time) error
	UpdateSupplier(id, supplierID string) error
	Delete(id string) error

	AddItem(item *entity.SupplierOrderItem) error
	GetItem(orderID, itemID string) (*entity.SupplierOrderItem, error)
	UpdateItem(item *entity.SupplierOrderItem) error
	DeleteItem(orderID, itemID string) error
	ListItems(orderID string) ([]*entity.SupplierOrderItem, error)
}
