package ledger

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor del libro:
// o aterrizan todas las filas y todas las mutaciones de stock, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator genera la representación imprimible (PDF) de un asiento.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, entry *dto.EntryDetailDTO, cashierName string) ([]byte, error)
}
