package orders

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del workflow de pedidos atados a esa tx. Recepciones,
// consolidación de borradores y borrados multi-fila pasan por aquí.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.SupplierOrderRepository,
		draftRepo repository.OrderDraftRepository,
		productRepo repository.ProductRepository,
	) error) error
}
