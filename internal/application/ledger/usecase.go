package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// UseCase es el motor del libro de transacciones: convierte una venta, una
// devolución o un ajuste manual en un conjunto atómico de filas más una
// mutación de stock por producto afectado.
//
// Políticas de stock (observadas en producción, no unificarlas sin decisión
// explícita de negocio):
//   - RecordSale puede dejar stock negativo; una venta nunca se bloquea por
//     falta de inventario.
//   - AdjustStock rechaza cualquier delta que deje stock negativo.
//   - RecordReturn acepta devoluciones que exceden lo vendido.
type UseCase struct {
	txRunner          TxRunner
	ledgerRepo        repository.LedgerRepository
	productRepo       repository.ProductRepository
	paymentMethodRepo repository.PaymentMethodRepository
	userRepo          repository.UserRepository
	receipts          ReceiptGenerator
}

// NewUseCase construye el motor del libro. ledgerRepo y productRepo van
// atados al pool (lecturas); las escrituras usan los repos de la tx.
func NewUseCase(
	txRunner TxRunner,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	userRepo repository.UserRepository,
	receipts ReceiptGenerator,
) *UseCase {
	return &UseCase{
		txRunner:          txRunner,
		ledgerRepo:        ledgerRepo,
		productRepo:       productRepo,
		paymentMethodRepo: paymentMethodRepo,
		userRepo:          userRepo,
		receipts:          receipts,
	}
}

// validateLines valida forma y referencias antes de abrir la transacción,
// para que un fallo de validación nunca deje estado parcial.
func (uc *UseCase) validateLines(lines []dto.SaleLineRequest) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.Price.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// RecordSale registra una venta: un asiento SALE con total = Σ cantidad×precio,
// una línea por producto y un decremento de stock por línea, todo en una
// transacción. El stock puede quedar negativo.
func (uc *UseCase) RecordSale(ctx context.Context, userID string, in dto.RecordSaleRequest) (*dto.EntryResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateLines(in.Lines); err != nil {
		return nil, err
	}
	if in.PaymentMethodID != nil {
		pm, err := uc.paymentMethodRepo.GetByID(*in.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if pm == nil {
			return nil, domain.ErrNotFound
		}
	}

	total := decimal.Zero
	for _, l := range in.Lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
	}

	entry := &entity.LedgerEntry{
		ID:              uuid.New().String(),
		Kind:            entity.EntryKindSale,
		Total:           total,
		PaymentMethodID: in.PaymentMethodID,
		UserID:          userID,
		CreatedAt:       time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := ledgerRepo.CreateEntry(entry); err != nil {
			return err
		}
		for _, l := range in.Lines {
			line := &entity.LedgerLine{
				ID:        uuid.New().String(),
				EntryID:   entry.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.Price,
			}
			if err := ledgerRepo.CreateLine(line); err != nil {
				return err
			}
			// Decremento sin chequeo: la venta con stock insuficiente procede
			// y deja el stock en negativo.
			if _, err := productRepo.ApplyStockDelta(l.ProductID, -l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.EntryResponse{EntryID: entry.ID, Kind: entry.Kind, Total: entry.Total}, nil
}

// RecordReturn registra una devolución: un asiento RETURN con total y
// cantidades negativas, y un incremento de stock por línea. No se verifica
// que lo devuelto no exceda lo vendido.
func (uc *UseCase) RecordReturn(ctx context.Context, userID string, in dto.RecordReturnRequest) (*dto.EntryResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateLines(in.Lines); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range in.Lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
	}
	total = total.Neg()

	entry := &entity.LedgerEntry{
		ID:        uuid.New().String(),
		Kind:      entity.EntryKindReturn,
		Total:     total,
		UserID:    userID,
		Reason:    in.Reason,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := ledgerRepo.CreateEntry(entry); err != nil {
			return err
		}
		for _, l := range in.Lines {
			line := &entity.LedgerLine{
				ID:        uuid.New().String(),
				EntryID:   entry.ID,
				ProductID: l.ProductID,
				Quantity:  -l.Quantity,
				Price:     l.Price,
			}
			if err := ledgerRepo.CreateLine(line); err != nil {
				return err
			}
			if _, err := productRepo.ApplyStockDelta(l.ProductID, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.EntryResponse{EntryID: entry.ID, Kind: entry.Kind, Total: entry.Total}, nil
}

// AdjustStock aplica un delta manual con signo. A diferencia de RecordSale,
// rechaza con ErrInsufficientStock cualquier ajuste que deje stock negativo,
// y no deja rastro en el libro.
func (uc *UseCase) AdjustStock(ctx context.Context, productID string, delta int64) (*dto.AdjustStockResponse, error) {
	if productID == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	var newStock int64
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Stock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		newStock, err = productRepo.ApplyStockDelta(productID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{ProductID: productID, NewStock: newStock}, nil
}

// GetEntry devuelve un asiento con sus líneas y nombres de producto resueltos.
// Lee fuera de transacción: los asientos son inmutables.
func (uc *UseCase) GetEntry(ctx context.Context, entryID string) (*dto.EntryDetailDTO, error) {
	if entryID == "" {
		return nil, domain.ErrInvalidInput
	}
	entry, err := uc.ledgerRepo.GetEntry(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.ledgerRepo.ListLines(entryID)
	if err != nil {
		return nil, err
	}

	out := &dto.EntryDetailDTO{
		ID:              entry.ID,
		Kind:            entry.Kind,
		Total:           entry.Total,
		PaymentMethodID: entry.PaymentMethodID,
		UserID:          entry.UserID,
		Reason:          entry.Reason,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt,
	}
	for _, l := range lines {
		p, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		// producto borrado del catálogo: se muestra el ID como nombre
		name := l.ProductID
		if p != nil {
			name = p.Name
		}
		out.Lines = append(out.Lines, dto.LedgerLineDTO{
			ProductID:   l.ProductID,
			ProductName: name,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return out, nil
}

// GetReceipt genera el PDF del comprobante de un asiento.
func (uc *UseCase) GetReceipt(ctx context.Context, entryID string) ([]byte, error) {
	entry, err := uc.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	u, err := uc.userRepo.GetByID(entry.UserID)
	if err != nil {
		return nil, err
	}
	cashier := entry.UserID
	if u != nil {
		cashier = u.Username
	}
	return uc.receipts.GenerateReceipt(ctx, entry, cashier)
}
