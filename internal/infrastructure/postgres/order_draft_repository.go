package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.OrderDraftRepository = (*OrderDraftRepo)(nil)

// OrderDraftRepo implementación del puerto OrderDraftRepository sobre PostgreSQL.
type OrderDraftRepo struct {
	q Querier
}

// NewOrderDraftRepository construye el adaptador de persistencia de borradores. Pasar pool o tx (Querier).
func NewOrderDraftRepository(q Querier) *OrderDraftRepo {
	return &OrderDraftRepo{q: q}
}

// Create persiste un borrador.
func (r *OrderDraftRepo) Create(draft *entity.OrderDraft) error {
	query := `
		INSERT INTO supplier_order_drafts (id, product_id, supplier_id, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		draft.ID, draft.ProductID, draft.SupplierID, draft.Quantity, draft.Notes, draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order draft: %w", err)
	}
	return nil
}

// GetByID obtiene un borrador por ID.
func (r *OrderDraftRepo) GetByID(id string) (*entity.OrderDraft, error) {
	query := `
		SELECT id, product_id, supplier_id, quantity, notes, created_at
		FROM supplier_order_drafts WHERE id = $1`
	var d entity.OrderDraft
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.ProductID, &d.SupplierID, &d.Quantity, &d.Notes, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order draft: %w", err)
	}
	return &d, nil
}

// ListByIDs obtiene los borradores cuyos IDs existan. IDs ausentes se omiten
// sin error; el caso de uso decide qué hacer con el subconjunto.
func (r *OrderDraftRepo) ListByIDs(ids []string) ([]*entity.OrderDraft, error) {
	query := `
		SELECT id, product_id, supplier_id, quantity, notes, created_at
		FROM supplier_order_drafts WHERE id = ANY($1) ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list order drafts by ids: %w", err)
	}
	defer rows.Close()
	return collectDrafts(rows)
}

// List lista todos los borradores, los más antiguos primero.
func (r *OrderDraftRepo) List() ([]*entity.OrderDraft, error) {
	query := `
		SELECT id, product_id, supplier_id, quantity, notes, created_at
		FROM supplier_order_drafts ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list order drafts: %w", err)
	}
	defer rows.Close()
	return collectDrafts(rows)
}

func collectDrafts(rows pgx.Rows) ([]*entity.OrderDraft, error) {
	var drafts []*entity.OrderDraft
	for rows.Next() {
		var d entity.OrderDraft
		if err := rows.Scan(&d.ID, &d.ProductID, &d.SupplierID, &d.Quantity, &d.Notes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

// Update actualiza un borrador.
func (r *OrderDraftRepo) Update(draft *entity.OrderDraft) error {
	query := `
		UPDATE supplier_order_drafts
		SET product_id = $2, supplier_id = $3, quantity = $4, notes = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		draft.ID, draft.ProductID, draft.SupplierID, draft.Quantity, draft.Notes,
	)
	if err != nil {
		return fmt.Errorf("update order draft: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un borrador.
func (r *OrderDraftRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM supplier_order_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order draft: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
