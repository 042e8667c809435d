package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
//
// ApplyStockDelta es la única primitiva de mutación de stock: suma delta (con
// signo) bajo el lock de fila de la transacción en curso, incrementa version
// y devuelve el stock resultante. La política de negatividad la decide el
// caso de uso, no el repositorio.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Search(q string, limit int) ([]*entity.Product, error)
	Update(product *entity.Product, expectedVersion *int64) error
	GetForUpdate(id string) (*entity.Product, error)
	ApplyStockDelta(id string, delta int64) (newStock int64, err error)
	UpdatePricing(id string, cost, price *decimal.Decimal) error
}
