package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/orders"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.SupplierOrder
	items  map[string]*entity.SupplierOrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*entity.SupplierOrder{},
		items:  map[string]*entity.SupplierOrderItem{},
	}
}

func (r *fakeOrderRepo) Create(o *entity.SupplierOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.SupplierOrder, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.SupplierOrder, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) List(status *entity.OrderStatus) ([]*entity.SupplierOrder, error) {
	var out []*entity.SupplierOrder
	for _, o := range r.orders {
		if status == nil || o.Status == *status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id string, status entity.OrderStatus, receivedAt *time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.ReceivedAt = receivedAt
	return nil
}

func (r *fakeOrderRepo) UpdateSupplier(id, supplierID string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.SupplierID = supplierID
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	for itemID, item := range r.items {
		if item.OrderID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *fakeOrderRepo) AddItem(item *entity.SupplierOrderItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeOrderRepo) GetItem(orderID, itemID string) (*entity.SupplierOrderItem, error) {
	item := r.items[itemID]
	if item == nil || item.OrderID != orderID {
		return nil, nil
	}
	return item, nil
}

func (r *fakeOrderRepo) UpdateItem(item *entity.SupplierOrderItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeOrderRepo) DeleteItem(orderID, itemID string) error {
	item := r.items[itemID]
	if item == nil || item.OrderID != orderID {
		return domain.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *fakeOrderRepo) ListItems(orderID string) ([]*entity.SupplierOrderItem, error) {
	var out []*entity.SupplierOrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeDraftRepo struct {
	drafts map[string]*entity.OrderDraft
}

func newFakeDraftRepo(drafts ...*entity.OrderDraft) *fakeDraftRepo {
	r := &fakeDraftRepo{drafts: map[string]*entity.OrderDraft{}}
	for _, d := range drafts {
		r.drafts[d.ID] = d
	}
	return r
}

func (r *fakeDraftRepo) Create(d *entity.OrderDraft) error {
	r.drafts[d.ID] = d
	return nil
}

func (r *fakeDraftRepo) GetByID(id string) (*entity.OrderDraft, error) {
	return r.drafts[id], nil
}

func (r *fakeDraftRepo) ListByIDs(ids []string) ([]*entity.OrderDraft, error) {
	var out []*entity.OrderDraft
	for _, id := range ids {
		if d, ok := r.drafts[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDraftRepo) List() ([]*entity.OrderDraft, error) {
	var out []*entity.OrderDraft
	for _, d := range r.drafts {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDraftRepo) Update(d *entity.OrderDraft) error {
	if _, ok := r.drafts[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.drafts[d.ID] = d
	return nil
}

func (r *fakeDraftRepo) Delete(id string) error {
	if _, ok := r.drafts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) List() ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Search(q string, limit int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product, expectedVersion *int64) error { return nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) ApplyStockDelta(id string, delta int64) (int64, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Stock += delta
	p.Version++
	return p.Stock, nil
}

func (r *fakeProductRepo) UpdatePricing(id string, cost, price *decimal.Decimal) error { return nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newFakeSupplierRepo(ids ...string) *fakeSupplierRepo {
	r := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{}}
	for _, id := range ids {
		r.suppliers[id] = &entity.Supplier{ID: id, Name: "proveedor " + id}
	}
	return r
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error) { return nil, nil }

// fakeTxRunner pasa los mismos repos en memoria al callback.
type fakeTxRunner struct {
	orderRepo   repository.SupplierOrderRepository
	draftRepo   repository.OrderDraftRepository
	productRepo repository.ProductRepository
}

func (r *fakeTxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.SupplierOrderRepository,
	draftRepo repository.OrderDraftRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.orderRepo, r.draftRepo, r.productRepo)
}

type env struct {
	workflowUC  *orders.WorkflowUseCase
	draftUC     *orders.DraftUseCase
	orderRepo   *fakeOrderRepo
	draftRepo   *fakeDraftRepo
	productRepo *fakeProductRepo
}

func buildEnv(supplierIDs []string, products ...*entity.Product) *env {
	orderRepo := newFakeOrderRepo()
	draftRepo := newFakeDraftRepo()
	productRepo := newFakeProductRepo(products...)
	supplierRepo := newFakeSupplierRepo(supplierIDs...)
	tx := &fakeTxRunner{orderRepo: orderRepo, draftRepo: draftRepo, productRepo: productRepo}
	return &env{
		workflowUC:  orders.NewWorkflowUseCase(tx, orderRepo, productRepo, supplierRepo),
		draftUC:     orders.NewDraftUseCase(tx, draftRepo, productRepo, supplierRepo),
		orderRepo:   orderRepo,
		draftRepo:   draftRepo,
		productRepo: productRepo,
	}
}

func product(id string, stock int64) *entity.Product {
	return &entity.Product{ID: id, Name: "producto " + id, Stock: stock, Version: 1, Active: true}
}

func (e *env) seedOrder(status entity.OrderStatus, supplierID string, items ...*entity.SupplierOrderItem) *entity.SupplierOrder {
	o := &entity.SupplierOrder{
		ID:         "order-" + string(status),
		SupplierID: supplierID,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	e.orderRepo.orders[o.ID] = o
	for _, item := range items {
		item.OrderID = o.ID
		e.orderRepo.items[item.ID] = item
	}
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida básico
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateHeader_IniciaEnDraft(t *testing.T) {
	e := buildEnv([]string{"s1"})

	out, err := e.workflowUC.CreateHeader(context.Background(), dto.CreateOrderRequest{SupplierID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDraft, e.orderRepo.orders[out.ID].Status)
}

func TestCreateHeader_ProveedorInexistente(t *testing.T) {
	e := buildEnv(nil)
	_, err := e.workflowUC.CreateHeader(context.Background(), dto.CreateOrderRequest{SupplierID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_RechazaPedidoRecibido(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusReceived, "s1")

	_, err := e.workflowUC.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{ProductID: "p1", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_TransicionesAdministrativas(t *testing.T) {
	e := buildEnv([]string{"s1"})
	o := e.seedOrder(entity.OrderStatusDraft, "s1")
	ctx := context.Background()

	require.NoError(t, e.workflowUC.UpdateStatus(ctx, o.ID, entity.OrderStatusSent))
	require.NoError(t, e.workflowUC.UpdateStatus(ctx, o.ID, entity.OrderStatusPending))

	// pending no vuelve a sent
	assert.ErrorIs(t, e.workflowUC.UpdateStatus(ctx, o.ID, entity.OrderStatusSent), domain.ErrInvalidTransition)
}

func TestUpdateStatus_RechazaEstadosDeRecepcion(t *testing.T) {
	// received y partial_received se derivan de los items: fijarlos a mano
	// acreditaría estado sin acreditar stock.
	e := buildEnv([]string{"s1"})
	o := e.seedOrder(entity.OrderStatusPending, "s1")

	assert.ErrorIs(t, e.workflowUC.UpdateStatus(context.Background(), o.ID, entity.OrderStatusReceived), domain.ErrInvalidTransition)
	assert.ErrorIs(t, e.workflowUC.UpdateStatus(context.Background(), o.ID, entity.OrderStatusPartialReceived), domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkReceived_AcreditaStockYCierra(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 10), product("p2", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 5},
		&entity.SupplierOrderItem{ID: "i2", ProductID: "p2", Quantity: 3},
	)

	require.NoError(t, e.workflowUC.MarkReceived(context.Background(), o.ID, 0))

	assert.Equal(t, entity.OrderStatusReceived, o.Status)
	require.NotNil(t, o.ReceivedAt)
	assert.Equal(t, int64(15), e.productRepo.products["p1"].Stock)
	assert.Equal(t, int64(3), e.productRepo.products["p2"].Stock)
	assert.True(t, e.orderRepo.items["i1"].Received)
	assert.Equal(t, int64(5), e.orderRepo.items["i1"].ReceivedQuantity)
}

func TestMarkReceived_CantidadExplicitaExigeUnSoloItem(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0), product("p2", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 5},
		&entity.SupplierOrderItem{ID: "i2", ProductID: "p2", Quantity: 3},
	)

	err := e.workflowUC.MarkReceived(context.Background(), o.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkReceived_CantidadExplicitaConUnItem(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 10},
	)

	require.NoError(t, e.workflowUC.MarkReceived(context.Background(), o.ID, 4))

	assert.Equal(t, int64(4), e.productRepo.products["p1"].Stock)
	assert.Equal(t, int64(4), e.orderRepo.items["i1"].ReceivedQuantity)
	assert.True(t, e.orderRepo.items["i1"].Received, "el cierre marca el item aunque la cantidad sea parcial")
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
}

func TestMarkReceived_CadaLlamadaVuelveAAcreditar(t *testing.T) {
	// Comportamiento vigente: la operación no es idempotente respecto al
	// stock. El estado y received_at sí se conservan entre llamadas.
	e := buildEnv([]string{"s1"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 5},
	)
	ctx := context.Background()

	require.NoError(t, e.workflowUC.MarkReceived(ctx, o.ID, 0))
	first := o.ReceivedAt
	require.NoError(t, e.workflowUC.MarkReceived(ctx, o.ID, 0))

	assert.Equal(t, int64(10), e.productRepo.products["p1"].Stock)
	assert.Equal(t, first, o.ReceivedAt, "received_at se estampa una sola vez")
}

func TestMarkReceived_CantidadNegativa(t *testing.T) {
	e := buildEnv([]string{"s1"})
	assert.ErrorIs(t, e.workflowUC.MarkReceived(context.Background(), "x", -1), domain.ErrInvalidInput)
}

func TestReactivate_VuelveAPendingYLimpiaFecha(t *testing.T) {
	e := buildEnv([]string{"s1"})
	now := time.Now()
	o := e.seedOrder(entity.OrderStatusReceived, "s1")
	o.ReceivedAt = &now

	require.NoError(t, e.workflowUC.Reactivate(context.Background(), o.ID))

	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Nil(t, o.ReceivedAt)
}

func TestReactivate_TransicionInvalida(t *testing.T) {
	e := buildEnv([]string{"s1"})
	o := e.seedOrder(entity.OrderStatusPending, "s1")

	assert.ErrorIs(t, e.workflowUC.Reactivate(context.Background(), o.ID), domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de items con recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItem_RecepcionAcumuladaMonotonica(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 10},
	)
	ctx := context.Background()

	five := int64(5)
	require.NoError(t, e.workflowUC.UpdateItem(ctx, o.ID, "i1", dto.UpdateOrderItemRequest{ReceivedQuantity: &five}))
	assert.Equal(t, int64(5), e.productRepo.products["p1"].Stock)

	// repetir el mismo acumulado no vuelve a acreditar
	require.NoError(t, e.workflowUC.UpdateItem(ctx, o.ID, "i1", dto.UpdateOrderItemRequest{ReceivedQuantity: &five}))
	assert.Equal(t, int64(5), e.productRepo.products["p1"].Stock)

	// bajar el acumulado está prohibido
	three := int64(3)
	err := e.workflowUC.UpdateItem(ctx, o.ID, "i1", dto.UpdateOrderItemRequest{ReceivedQuantity: &three})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(5), e.productRepo.products["p1"].Stock)
}

func TestUpdateItem_DerivaEstadoParcialYRecibido(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0), product("p2", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 4},
		&entity.SupplierOrderItem{ID: "i2", ProductID: "p2", Quantity: 6},
	)
	ctx := context.Background()

	four := int64(4)
	require.NoError(t, e.workflowUC.UpdateItem(ctx, o.ID, "i1", dto.UpdateOrderItemRequest{ReceivedQuantity: &four}))
	assert.Equal(t, entity.OrderStatusPartialReceived, o.Status)
	assert.True(t, e.orderRepo.items["i1"].Received, "alcanzar la cantidad pedida marca el item")

	six := int64(6)
	require.NoError(t, e.workflowUC.UpdateItem(ctx, o.ID, "i2", dto.UpdateOrderItemRequest{ReceivedQuantity: &six}))
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
	assert.NotNil(t, o.ReceivedAt)
}

func TestUpdateItem_RechazaPedidoRecibido(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusReceived, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 5, ReceivedQuantity: 5, Received: true},
	)

	two := int64(2)
	err := e.workflowUC.UpdateItem(context.Background(), o.ID, "i1", dto.UpdateOrderItemRequest{Quantity: &two})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(5), e.orderRepo.items["i1"].Quantity, "la línea no se toca")
}

func TestUpdateItem_NoDegradaPedidoRecibido(t *testing.T) {
	// Desmarcar un item no puede sacar al pedido de received por la puerta de
	// atrás: la única vuelta atrás es Reactivate (received -> pending).
	e := buildEnv([]string{"s1"}, product("p1", 0))
	now := time.Now()
	o := e.seedOrder(entity.OrderStatusReceived, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 5, ReceivedQuantity: 3, Received: true},
	)
	o.ReceivedAt = &now
	ctx := context.Background()

	notReceived := false
	err := e.workflowUC.UpdateItem(ctx, o.ID, "i1", dto.UpdateOrderItemRequest{Received: &notReceived})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
	assert.True(t, e.orderRepo.items["i1"].Received)

	// tras reactivar, la corrección sí procede
	require.NoError(t, e.workflowUC.Reactivate(ctx, o.ID))
	require.NoError(t, e.workflowUC.UpdateItem(ctx, o.ID, "i1", dto.UpdateOrderItemRequest{Received: &notReceived}))
	assert.Equal(t, entity.OrderStatusPartialReceived, o.Status)
}

func TestDeleteItem_RechazaPedidoRecibido(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusReceived, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 1},
	)

	assert.ErrorIs(t, e.workflowUC.DeleteItem(context.Background(), o.ID, "i1"), domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Duplicar y mover entre proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestDuplicateToSupplier_ClonaSinTocarElOriginal(t *testing.T) {
	e := buildEnv([]string{"s1", "s2"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusReceived, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 7, ReceivedQuantity: 7, Received: true},
	)

	out, err := e.workflowUC.DuplicateToSupplier(context.Background(), o.ID, "s2")
	require.NoError(t, err)

	clone := e.orderRepo.orders[out.ID]
	require.NotNil(t, clone)
	assert.Equal(t, "s2", clone.SupplierID)
	assert.Equal(t, entity.OrderStatusPending, clone.Status)

	cloneItems, _ := e.orderRepo.ListItems(out.ID)
	require.Len(t, cloneItems, 1)
	assert.Equal(t, int64(7), cloneItems[0].Quantity)
	assert.Equal(t, int64(0), cloneItems[0].ReceivedQuantity, "la copia arranca sin recepciones")
	assert.False(t, cloneItems[0].Received)

	// el original sigue intacto
	assert.Equal(t, "s1", o.SupplierID)
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
}

func TestMoveToSupplier_ReasignaElMismoPedido(t *testing.T) {
	e := buildEnv([]string{"s1", "s2"}, product("p1", 0))
	o := e.seedOrder(entity.OrderStatusPending, "s1",
		&entity.SupplierOrderItem{ID: "i1", ProductID: "p1", Quantity: 2},
	)

	require.NoError(t, e.workflowUC.MoveToSupplier(context.Background(), o.ID, "s2"))

	assert.Equal(t, "s2", o.SupplierID)
	assert.Len(t, e.orderRepo.orders, 1, "mover no duplica pedidos")
}

func TestMoveToSupplier_ProveedorInexistente(t *testing.T) {
	e := buildEnv([]string{"s1"})
	o := e.seedOrder(entity.OrderStatusPending, "s1")

	assert.ErrorIs(t, e.workflowUC.MoveToSupplier(context.Background(), o.ID, "nope"), domain.ErrNotFound)
	assert.Equal(t, "s1", o.SupplierID)
}
