package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL.
// Los asientos son inmutables: no hay UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CreateEntry inserta la cabecera de un asiento.
func (r *LedgerRepo) CreateEntry(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, kind, total, payment_method_id, user_id, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Kind, entry.Total, entry.PaymentMethodID,
		entry.UserID, entry.Reason, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de asiento.
func (r *LedgerRepo) CreateLine(line *entity.LedgerLine) error {
	query := `
		INSERT INTO ledger_lines (id, entry_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.EntryID, line.ProductID, line.Quantity, line.Price,
	)
	if err != nil {
		return fmt.Errorf("insert ledger line: %w", err)
	}
	return nil
}

// GetEntry obtiene la cabecera de un asiento por ID.
func (r *LedgerRepo) GetEntry(id string) (*entity.LedgerEntry, error) {
	query := `
		SELECT id, kind, total, payment_method_id, user_id, reason, notes, created_at
		FROM ledger_entries WHERE id = $1`
	var e entity.LedgerEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Kind, &e.Total, &e.PaymentMethodID, &e.UserID, &e.Reason, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return &e, nil
}

// ListLines lista las líneas de un asiento.
func (r *LedgerRepo) ListLines(entryID string) ([]*entity.LedgerLine, error) {
	query := `
		SELECT id, entry_id, product_id, quantity, price
		FROM ledger_lines WHERE entry_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list ledger lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.LedgerLine
	for rows.Next() {
		var l entity.LedgerLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
			return nil, fmt.Errorf("scan ledger line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}
