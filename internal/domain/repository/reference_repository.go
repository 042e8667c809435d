package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// Puertos de datos de referencia. Son colaboradores de solo lectura para el
// core: el CRUD completo vive fuera de este servicio.

// PaymentMethodRepository métodos de pago.
type PaymentMethodRepository interface {
	GetByID(id string) (*entity.PaymentMethod, error)
	List() ([]*entity.PaymentMethod, error)
}

// SupplierRepository proveedores.
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
}

// DepartmentRepository departamentos.
type DepartmentRepository interface {
	List() ([]*entity.Department, error)
}
