package catalog

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

const searchLimit = 20

// UseCase CRUD de productos y recepción rápida por código de barras.
// No contiene reglas de negocio más allá de chequeos de existencia: el stock
// solo cambia vía libro de transacciones, ajustes y recepciones.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo}
}

// Create da de alta un producto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	minStock := in.MinStock
	if minStock == 0 {
		minStock = 5
	}
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Barcode:      in.Barcode,
		Price:        in.Price,
		Cost:         in.Cost,
		Stock:        in.Stock,
		MinStock:     minStock,
		DepartmentID: in.DepartmentID,
		SupplierID:   in.SupplierID,
		Active:       in.Active,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update edita datos de referencia del producto (no Stock ni Cost).
// Con ExpectedVersion presente la edición es condicional y devuelve
// ErrConflict si la fila cambió desde esa versión.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) error {
	if id == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	p.Name = in.Name
	p.Barcode = in.Barcode
	p.Price = in.Price
	p.MinStock = in.MinStock
	p.DepartmentID = in.DepartmentID
	p.SupplierID = in.SupplierID
	p.Active = in.Active
	p.UpdatedAt = time.Now()
	return uc.productRepo.Update(p, in.ExpectedVersion)
}

// GetByID devuelve un producto.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List devuelve todos los productos.
func (uc *UseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Search busca productos activos por nombre o código de barras exacto.
func (uc *UseCase) Search(ctx context.Context, q string) ([]*dto.ProductResponse, error) {
	if q == "" {
		return []*dto.ProductResponse{}, nil
	}
	list, err := uc.productRepo.Search(q, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// QuickReceive recepción rápida por código de barras: suma cantidad al stock
// y opcionalmente actualiza costo y precio, todo en una transacción.
func (uc *UseCase) QuickReceive(ctx context.Context, in dto.QuickReceiveRequest) (*dto.ProductResponse, error) {
	if in.Barcode == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product
	err := uc.txRunner.RunCatalog(ctx, func(productRepo repository.ProductRepository) error {
		p, err := productRepo.GetByBarcode(in.Barcode)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if _, err := productRepo.GetForUpdate(p.ID); err != nil {
			return err
		}
		if in.NewCost != nil || in.NewPrice != nil {
			if err := productRepo.UpdatePricing(p.ID, in.NewCost, in.NewPrice); err != nil {
				return err
			}
		}
		newStock, err := productRepo.ApplyStockDelta(p.ID, in.Quantity)
		if err != nil {
			return err
		}
		updated, err = productRepo.GetByID(p.ID)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		updated.Stock = newStock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		Price:        p.Price,
		Cost:         p.Cost,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		DepartmentID: p.DepartmentID,
		SupplierID:   p.SupplierID,
		Active:       p.Active,
		LowStock:     p.LowStock(),
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
