package catalog

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función con el repositorio de productos atado a una
// transacción. Lo usa la recepción rápida, que toca precio, costo y stock de
// una sola vez.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}
