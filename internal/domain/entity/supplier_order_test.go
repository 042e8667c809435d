package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

func TestCanTransition_Tabla(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		want     bool
	}{
		{entity.OrderStatusDraft, entity.OrderStatusSent, true},
		{entity.OrderStatusDraft, entity.OrderStatusPending, true},
		{entity.OrderStatusDraft, entity.OrderStatusReceived, false},
		{entity.OrderStatusSent, entity.OrderStatusPending, true},
		{entity.OrderStatusSent, entity.OrderStatusDraft, false},
		{entity.OrderStatusPending, entity.OrderStatusPartialReceived, true},
		{entity.OrderStatusPending, entity.OrderStatusReceived, true},
		{entity.OrderStatusPending, entity.OrderStatusSent, false},
		{entity.OrderStatusPartialReceived, entity.OrderStatusReceived, true},
		{entity.OrderStatusPartialReceived, entity.OrderStatusPending, true},
		// la vuelta atrás explícita: reactivar un pedido recibido
		{entity.OrderStatusReceived, entity.OrderStatusPending, true},
		{entity.OrderStatusReceived, entity.OrderStatusDraft, false},
		{entity.OrderStatusReceived, entity.OrderStatusSent, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.CanTransition(c.from, c.to),
			"transición %s -> %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, entity.ValidStatus(entity.OrderStatusDraft))
	assert.True(t, entity.ValidStatus(entity.OrderStatusPartialReceived))
	assert.False(t, entity.ValidStatus(entity.OrderStatus("cancelado")))
	assert.False(t, entity.ValidStatus(entity.OrderStatus("")))
}

func TestFullyReceived(t *testing.T) {
	assert.False(t, (&entity.SupplierOrderItem{Quantity: 5, ReceivedQuantity: 3}).FullyReceived())
	assert.True(t, (&entity.SupplierOrderItem{Quantity: 5, ReceivedQuantity: 5}).FullyReceived())
	assert.True(t, (&entity.SupplierOrderItem{Quantity: 5, ReceivedQuantity: 7}).FullyReceived())
	// el flag manual pesa aunque el acumulado no alcance
	assert.True(t, (&entity.SupplierOrderItem{Quantity: 5, ReceivedQuantity: 0, Received: true}).FullyReceived())
}
