package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// LedgerRepository puerto de persistencia del libro de transacciones.
// Los asientos son inmutables: solo hay inserción y lectura.
type LedgerRepository interface {
	CreateEntry(entry *entity.LedgerEntry) error
	CreateLine(line *entity.LedgerLine) error
	GetEntry(id string) (*entity.LedgerEntry, error)
	ListLines(entryID string) ([]*entity.LedgerLine, error)
}
