package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func (e *env) seedDraft(id, productID string, supplierID *string, qty int64) *entity.OrderDraft {
	d := &entity.OrderDraft{
		ID:         id,
		ProductID:  productID,
		SupplierID: supplierID,
		Quantity:   qty,
		CreatedAt:  time.Now(),
	}
	e.draftRepo.drafts[id] = d
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Add / Update / Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestAddDraft_CantidadPorDefecto(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))

	out, err := e.draftUC.Add(context.Background(), dto.AddDraftRequest{ProductID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.draftRepo.drafts[out.ID].Quantity)
}

func TestAddDraft_ProductoInexistente(t *testing.T) {
	e := buildEnv([]string{"s1"})
	_, err := e.draftUC.Add(context.Background(), dto.AddDraftRequest{ProductID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDraft_CantidadInvalida(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	e.seedDraft("d1", "p1", nil, 2)

	err := e.draftUC.Update(context.Background(), "d1", dto.UpdateDraftRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveDraft_Descarta(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	e.seedDraft("d1", "p1", nil, 2)

	require.NoError(t, e.draftUC.Remove(context.Background(), "d1"))
	assert.Empty(t, e.draftRepo.drafts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_FiltraPorProveedorYConsume(t *testing.T) {
	e := buildEnv([]string{"s1", "s2"}, product("p1", 0), product("p2", 0), product("p3", 0))
	e.seedDraft("d1", "p1", nil, 2)          // sin proveedor: compatible
	e.seedDraft("d2", "p2", strPtr("s1"), 3) // proveedor destino: compatible
	e.seedDraft("d3", "p3", strPtr("s2"), 4) // otro proveedor: se excluye

	out, err := e.draftUC.Commit(context.Background(), dto.CommitDraftsRequest{
		SupplierID: "s1",
		DraftIDs:   []string{"d1", "d2", "d3"},
	})
	require.NoError(t, err)

	order := e.orderRepo.orders[out.ID]
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusPending, order.Status, "el pedido consolidado nace en pending")

	items, _ := e.orderRepo.ListItems(out.ID)
	assert.Len(t, items, 2, "solo los borradores compatibles generan items")

	// los consumidos desaparecen; el incompatible sobrevive
	assert.NotContains(t, e.draftRepo.drafts, "d1")
	assert.NotContains(t, e.draftRepo.drafts, "d2")
	assert.Contains(t, e.draftRepo.drafts, "d3")
}

func TestCommit_IDsAusentesSeIgnoran(t *testing.T) {
	e := buildEnv([]string{"s1"}, product("p1", 0))
	e.seedDraft("d1", "p1", nil, 2)

	out, err := e.draftUC.Commit(context.Background(), dto.CommitDraftsRequest{
		SupplierID: "s1",
		DraftIDs:   []string{"d1", "fantasma"},
	})
	require.NoError(t, err)

	items, _ := e.orderRepo.ListItems(out.ID)
	assert.Len(t, items, 1)
}

func TestCommit_SinSobrevivientes(t *testing.T) {
	e := buildEnv([]string{"s1", "s2"}, product("p1", 0))
	e.seedDraft("d1", "p1", strPtr("s2"), 2)

	_, err := e.draftUC.Commit(context.Background(), dto.CommitDraftsRequest{
		SupplierID: "s1",
		DraftIDs:   []string{"d1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, e.orderRepo.orders, "sin sobrevivientes no se crea pedido")
	assert.Contains(t, e.draftRepo.drafts, "d1", "el borrador incompatible no se consume")
}

func TestCommit_ProveedorInexistente(t *testing.T) {
	e := buildEnv(nil, product("p1", 0))
	e.seedDraft("d1", "p1", nil, 2)

	_, err := e.draftUC.Commit(context.Background(), dto.CommitDraftsRequest{
		SupplierID: "nope",
		DraftIDs:   []string{"d1"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
