package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// DraftUseCase maneja el buffer de borradores de reposición: la lista efímera
// de "agregar a pedido pendiente" por producto, independiente de cualquier
// pedido confirmado. Un borrador vive hasta que se consolida (CommitDrafts)
// o se descarta.
type DraftUseCase struct {
	txRunner     TxRunner
	draftRepo    repository.OrderDraftRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewDraftUseCase construye el caso de uso del buffer de borradores.
func NewDraftUseCase(
	txRunner TxRunner,
	draftRepo repository.OrderDraftRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *DraftUseCase {
	return &DraftUseCase{
		txRunner:     txRunner,
		draftRepo:    draftRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// Add crea un borrador para un producto. Cantidad por defecto: 1.
func (uc *DraftUseCase) Add(ctx context.Context, in dto.AddDraftRequest) (*dto.IDResponse, error) {
	if in.ProductID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != nil {
		s, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	draft := &entity.OrderDraft{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		Quantity:   qty,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}
	if err := uc.draftRepo.Create(draft); err != nil {
		return nil, err
	}
	return &dto.IDResponse{ID: draft.ID}, nil
}

// Update cambia cantidad y/o proveedor de un borrador.
func (uc *DraftUseCase) Update(ctx context.Context, id string, in dto.UpdateDraftRequest) error {
	if id == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	draft, err := uc.draftRepo.GetByID(id)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	if in.SupplierID != nil {
		s, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
	}
	draft.Quantity = in.Quantity
	draft.SupplierID = in.SupplierID
	return uc.draftRepo.Update(draft)
}

// Remove descarta un borrador.
func (uc *DraftUseCase) Remove(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	draft, err := uc.draftRepo.GetByID(id)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	return uc.draftRepo.Delete(id)
}

// List devuelve todos los borradores vivos.
func (uc *DraftUseCase) List(ctx context.Context) ([]*dto.DraftDTO, error) {
	drafts, err := uc.draftRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DraftDTO, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, toDraftDTO(d))
	}
	return out, nil
}

// Commit consolida borradores en un pedido nuevo en estado pending.
// De los ids dados sobreviven los borradores sin proveedor o con el proveedor
// destino; si no sobrevive ninguno, falla con ErrInvalidInput. La creación de
// la cabecera, los items y el borrado de los borradores consumidos ocurren en
// una sola transacción.
func (uc *DraftUseCase) Commit(ctx context.Context, in dto.CommitDraftsRequest) (*dto.IDResponse, error) {
	if in.SupplierID == "" || len(in.DraftIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}

	orderID := uuid.New().String()
	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.SupplierOrderRepository,
		draftRepo repository.OrderDraftRepository,
		_ repository.ProductRepository,
	) error {
		drafts, err := draftRepo.ListByIDs(in.DraftIDs)
		if err != nil {
			return err
		}
		surviving := make([]*entity.OrderDraft, 0, len(drafts))
		for _, d := range drafts {
			if d.SupplierID == nil || *d.SupplierID == in.SupplierID {
				surviving = append(surviving, d)
			}
		}
		if len(surviving) == 0 {
			return domain.ErrInvalidInput
		}
		order := &entity.SupplierOrder{
			ID:         orderID,
			SupplierID: in.SupplierID,
			Status:     entity.OrderStatusPending,
			CreatedAt:  time.Now(),
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, d := range surviving {
			item := &entity.SupplierOrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: d.ProductID,
				Quantity:  d.Quantity,
				Notes:     d.Notes,
			}
			if err := orderRepo.AddItem(item); err != nil {
				return err
			}
			if err := draftRepo.Delete(d.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.IDResponse{ID: orderID}, nil
}

func toDraftDTO(d *entity.OrderDraft) *dto.DraftDTO {
	return &dto.DraftDTO{
		ID:         d.ID,
		ProductID:  d.ProductID,
		SupplierID: d.SupplierID,
		Quantity:   d.Quantity,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
	}
}
