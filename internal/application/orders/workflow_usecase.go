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

// WorkflowUseCase maneja el ciclo de vida de un pedido a proveedor:
// draft -> sent -> pending -> partial_received -> received, con la
// reactivación received -> pending como vuelta atrás explícita.
//
// El estado de recepción (partial_received/received) se deriva de los items;
// los cambios administrativos (sent, pending) pasan por la tabla de
// transiciones. La recepción es la única operación del workflow que toca el
// stock del catálogo, siempre en la misma transacción que el cambio de estado.
type WorkflowUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.SupplierOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewWorkflowUseCase construye el caso de uso del workflow.
func NewWorkflowUseCase(
	txRunner TxRunner,
	orderRepo repository.SupplierOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateHeader crea la cabecera de un pedido en estado draft.
func (uc *WorkflowUseCase) CreateHeader(ctx context.Context, in dto.CreateOrderRequest) (*dto.IDResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireSupplier(in.SupplierID); err != nil {
		return nil, err
	}
	order := &entity.SupplierOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.OrderStatusDraft,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return &dto.IDResponse{ID: order.ID}, nil
}

// AddItem agrega una línea a un pedido que aún no está recibido.
func (uc *WorkflowUseCase) AddItem(ctx context.Context, orderID string, in dto.AddOrderItemRequest) (*dto.IDResponse, error) {
	if orderID == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusReceived {
		return nil, domain.ErrConflict
	}
	p, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	item := &entity.SupplierOrderItem{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	}
	if err := uc.orderRepo.AddItem(item); err != nil {
		return nil, err
	}
	return &dto.IDResponse{ID: item.ID}, nil
}

// UpdateItem edita una línea de un pedido que aún no está recibido. Si trae
// ReceivedQuantity, eso es una recepción: el valor es acumulado y solo puede
// crecer; la diferencia con lo ya recibido se suma al stock del producto en la
// misma transacción, y el estado del pedido se rederiva de sus items.
// Correcciones sobre un pedido recibido pasan primero por Reactivate.
func (uc *WorkflowUseCase) UpdateItem(ctx context.Context, orderID, itemID string, in dto.UpdateOrderItemRequest) error {
	if orderID == "" || itemID == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.SupplierOrderRepository,
		_ repository.OrderDraftRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusReceived {
			return domain.ErrConflict
		}
		item, err := orderRepo.GetItem(orderID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Notes != nil {
			item.Notes = *in.Notes
		}
		if in.Received != nil {
			item.Received = *in.Received
		}
		if in.ReceivedQuantity != nil {
			delta := *in.ReceivedQuantity - item.ReceivedQuantity
			if delta < 0 {
				// received_quantity es monotónico: nunca se pisa hacia abajo
				return domain.ErrInvalidInput
			}
			item.ReceivedQuantity = *in.ReceivedQuantity
			if item.ReceivedQuantity >= item.Quantity {
				item.Received = true
			}
			if delta > 0 {
				if _, err := productRepo.ApplyStockDelta(item.ProductID, delta); err != nil {
					return err
				}
			}
		}
		if err := orderRepo.UpdateItem(item); err != nil {
			return err
		}
		return uc.rederiveStatus(orderRepo, order)
	})
}

// DeleteItem elimina una línea de un pedido no recibido.
func (uc *WorkflowUseCase) DeleteItem(ctx context.Context, orderID, itemID string) error {
	if orderID == "" || itemID == "" {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusReceived {
		return domain.ErrConflict
	}
	item, err := uc.orderRepo.GetItem(orderID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.DeleteItem(orderID, itemID)
}

// MarkReceived cierra el pedido: estampa received_at, fija el estado en
// received y acredita stock. Con receivedQty > 0 el pedido debe tener
// exactamente un item, que recibe esa cantidad; con receivedQty == 0 cada
// item se acredita por su cantidad pedida completa.
//
// Idempotente respecto al estado (received sigue received) pero no respecto
// al stock: cada llamada vuelve a acreditar. Uso previsto: una sola llamada.
func (uc *WorkflowUseCase) MarkReceived(ctx context.Context, orderID string, receivedQty int64) error {
	if orderID == "" || receivedQty < 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.SupplierOrderRepository,
		_ repository.OrderDraftRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		items, err := orderRepo.ListItems(orderID)
		if err != nil {
			return err
		}
		if receivedQty > 0 && len(items) != 1 {
			return domain.ErrInvalidInput
		}
		for _, item := range items {
			credit := item.Quantity
			if receivedQty > 0 {
				credit = receivedQty
			}
			item.ReceivedQuantity += credit
			item.Received = true
			if err := orderRepo.UpdateItem(item); err != nil {
				return err
			}
			if _, err := productRepo.ApplyStockDelta(item.ProductID, credit); err != nil {
				return err
			}
		}
		receivedAt := order.ReceivedAt
		if receivedAt == nil {
			now := time.Now()
			receivedAt = &now
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusReceived, receivedAt)
	})
}

// Reactivate devuelve un pedido recibido (o parcial) a pending sin tocar
// cantidades ni stock. Limpia received_at.
func (uc *WorkflowUseCase) Reactivate(ctx context.Context, orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusPending) {
		return domain.ErrInvalidTransition
	}
	return uc.orderRepo.UpdateStatus(orderID, entity.OrderStatusPending, nil)
}

// UpdateStatus aplica un cambio administrativo de estado (draft -> sent,
// sent -> pending, draft -> pending). Los estados de recepción no se fijan
// por aquí: eso acreditaría estado sin acreditar stock.
func (uc *WorkflowUseCase) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	if !entity.ValidStatus(status) {
		return domain.ErrInvalidInput
	}
	if status == entity.OrderStatusReceived || status == entity.OrderStatusPartialReceived {
		return domain.ErrInvalidTransition
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, status) {
		return domain.ErrInvalidTransition
	}
	return uc.orderRepo.UpdateStatus(orderID, status, order.ReceivedAt)
}

// DuplicateToSupplier clona los items del pedido en un pedido nuevo en
// pending bajo otro proveedor. No borra el original; para reasignar de forma
// atómica usar MoveToSupplier.
func (uc *WorkflowUseCase) DuplicateToSupplier(ctx context.Context, orderID, newSupplierID string) (*dto.IDResponse, error) {
	if orderID == "" || newSupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireSupplier(newSupplierID); err != nil {
		return nil, err
	}
	newID := uuid.New().String()
	err := uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.SupplierOrderRepository,
		_ repository.OrderDraftRepository,
		_ repository.ProductRepository,
	) error {
		src, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if src == nil {
			return domain.ErrNotFound
		}
		items, err := orderRepo.ListItems(orderID)
		if err != nil {
			return err
		}
		clone := &entity.SupplierOrder{
			ID:         newID,
			SupplierID: newSupplierID,
			Status:     entity.OrderStatusPending,
			Notes:      src.Notes,
			CreatedAt:  time.Now(),
		}
		if err := orderRepo.Create(clone); err != nil {
			return err
		}
		for _, item := range items {
			ci := &entity.SupplierOrderItem{
				ID:        uuid.New().String(),
				OrderID:   newID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Notes:     item.Notes,
			}
			if err := orderRepo.AddItem(ci); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.IDResponse{ID: newID}, nil
}

// MoveToSupplier reasigna el pedido completo a otro proveedor en una sola
// operación atómica (reemplaza la secuencia duplicar + borrar, que podía
// dejar dos pedidos vivos si fallaba entre medio).
func (uc *WorkflowUseCase) MoveToSupplier(ctx context.Context, orderID, newSupplierID string) error {
	if orderID == "" || newSupplierID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.requireSupplier(newSupplierID); err != nil {
		return err
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.UpdateSupplier(orderID, newSupplierID)
}

// Delete elimina el pedido y sus items.
func (uc *WorkflowUseCase) Delete(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.SupplierOrderRepository,
		_ repository.OrderDraftRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		return orderRepo.Delete(orderID)
	})
}

// Get devuelve un pedido con sus items.
func (uc *WorkflowUseCase) Get(ctx context.Context, orderID string) (*dto.OrderDTO, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order, items), nil
}

// List devuelve los pedidos, opcionalmente filtrados por estado.
func (uc *WorkflowUseCase) List(ctx context.Context, status *entity.OrderStatus) ([]*dto.OrderDTO, error) {
	if status != nil && !entity.ValidStatus(*status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.List(status)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderDTO, 0, len(list))
	for _, o := range list {
		items, err := uc.orderRepo.ListItems(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrderDTO(o, items))
	}
	return out, nil
}

// rederiveStatus recalcula el estado de recepción a partir de los items.
// Es un estado derivado: no pasa por la tabla de transiciones.
func (uc *WorkflowUseCase) rederiveStatus(orderRepo repository.SupplierOrderRepository, order *entity.SupplierOrder) error {
	items, err := orderRepo.ListItems(order.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	all := true
	any := false
	for _, item := range items {
		if item.ReceivedQuantity > 0 || item.Received {
			any = true
		}
		if !item.FullyReceived() {
			all = false
		}
	}
	switch {
	case all:
		receivedAt := order.ReceivedAt
		if receivedAt == nil {
			now := time.Now()
			receivedAt = &now
		}
		return orderRepo.UpdateStatus(order.ID, entity.OrderStatusReceived, receivedAt)
	case any:
		return orderRepo.UpdateStatus(order.ID, entity.OrderStatusPartialReceived, order.ReceivedAt)
	}
	return nil
}

func (uc *WorkflowUseCase) requireSupplier(id string) error {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toOrderDTO(order *entity.SupplierOrder, items []*entity.SupplierOrderItem) *dto.OrderDTO {
	out := &dto.OrderDTO{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     string(order.Status),
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
		ReceivedAt: order.ReceivedAt,
		Items:      make([]dto.OrderItemDTO, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.OrderItemDTO{
			ID:               item.ID,
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			ReceivedQuantity: item.ReceivedQuantity,
			Received:         item.Received,
			Notes:            item.Notes,
		})
	}
	return out
}
