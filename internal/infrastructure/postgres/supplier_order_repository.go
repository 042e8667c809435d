package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.SupplierOrderRepository = (*SupplierOrderRepo)(nil)

// SupplierOrderRepo implementación del puerto SupplierOrderRepository sobre PostgreSQL.
type SupplierOrderRepo struct {
	q Querier
}

// NewSupplierOrderRepository construye el adaptador de persistencia de pedidos. Pasar pool o tx (Querier).
func NewSupplierOrderRepository(q Querier) *SupplierOrderRepo {
	return &SupplierOrderRepo{q: q}
}

// Create persiste la cabecera de un pedido.
func (r *SupplierOrderRepo) Create(order *entity.SupplierOrder) error {
	query := `
		INSERT INTO supplier_orders (id, supplier_id, status, notes, created_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.Status, order.Notes, order.CreatedAt, order.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier order: %w", err)
	}
	return nil
}

func (r *SupplierOrderRepo) getHeader(id string, forUpdate bool) (*entity.SupplierOrder, error) {
	query := `
		SELECT id, supplier_id, status, notes, created_at, received_at
		FROM supplier_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.SupplierOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.Notes, &o.CreatedAt, &o.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier order: %w", err)
	}
	items, err := r.ListItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetByID obtiene un pedido con sus ítems.
func (r *SupplierOrderRepo) GetByID(id string) (*entity.SupplierOrder, error) {
	return r.getHeader(id, false)
}

// GetForUpdate obtiene un pedido bloqueando la fila de la cabecera. El lock
// serializa recepciones y ediciones concurrentes sobre el mismo pedido.
func (r *SupplierOrderRepo) GetForUpdate(id string) (*entity.SupplierOrder, error) {
	return r.getHeader(id, true)
}

// List lista pedidos, opcionalmente filtrados por estado, los más recientes primero.
func (r *SupplierOrderRepo) List(status *entity.OrderStatus) ([]*entity.SupplierOrder, error) {
	query := `
		SELECT id, supplier_id, status, notes, created_at, received_at
		FROM supplier_orders`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.SupplierOrder
	for rows.Next() {
		var o entity.SupplierOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Status, &o.Notes, &o.CreatedAt, &o.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan supplier order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		items, err := r.ListItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

// UpdateStatus cambia el estado de un pedido y su marca de recepción.
func (r *SupplierOrderRepo) UpdateStatus(id string, status entity.OrderStatus, receivedAt *time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE supplier_orders SET status = $2, received_at = $3 WHERE id = $1`,
		id, status, receivedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSupplier reasigna el pedido a otro proveedor.
func (r *SupplierOrderRepo) UpdateSupplier(id, supplierID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE supplier_orders SET supplier_id = $2 WHERE id = $1`,
		id, supplierID,
	)
	if err != nil {
		return fmt.Errorf("update supplier order supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un pedido y sus ítems.
func (r *SupplierOrderRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM supplier_order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete supplier order items: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM supplier_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddItem inserta un ítem de pedido.
func (r *SupplierOrderRepo) AddItem(item *entity.SupplierOrderItem) error {
	query := `
		INSERT INTO supplier_order_items (id, order_id, product_id, quantity, received_quantity, received, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity,
		item.ReceivedQuantity, item.Received, item.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetItem obtiene un ítem por pedido e ID.
func (r *SupplierOrderRepo) GetItem(orderID, itemID string) (*entity.SupplierOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, received_quantity, received, notes
		FROM supplier_order_items WHERE order_id = $1 AND id = $2`
	var it entity.SupplierOrderItem
	err := r.q.QueryRow(context.Background(), query, orderID, itemID).Scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.ReceivedQuantity, &it.Received, &it.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return &it, nil
}

// UpdateItem actualiza un ítem completo.
func (r *SupplierOrderRepo) UpdateItem(item *entity.SupplierOrderItem) error {
	query := `
		UPDATE supplier_order_items
		SET product_id = $3, quantity = $4, received_quantity = $5, received = $6, notes = $7
		WHERE order_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		item.OrderID, item.ID, item.ProductID, item.Quantity,
		item.ReceivedQuantity, item.Received, item.Notes,
	)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina un ítem de un pedido.
func (r *SupplierOrderRepo) DeleteItem(orderID, itemID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM supplier_order_items WHERE order_id = $1 AND id = $2`,
		orderID, itemID,
	)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems lista los ítems de un pedido en orden de inserción.
func (r *SupplierOrderRepo) ListItems(orderID string) ([]*entity.SupplierOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, received_quantity, received, notes
		FROM supplier_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SupplierOrderItem
	for rows.Next() {
		var it entity.SupplierOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.ReceivedQuantity, &it.Received, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
