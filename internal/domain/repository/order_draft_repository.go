package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// OrderDraftRepository puerto de persistencia del buffer de borradores.
type OrderDraftRepository interface {
	Create(draft *entity.OrderDraft) error
	GetByID(id string) (*entity.OrderDraft, error)
	ListByIDs(ids []string) ([]*entity.OrderDraft, error)
	List() ([]*entity.OrderDraft, error)
	Update(draft *entity.OrderDraft) error
	Delete(id string) error
}
