package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es un entero con signo: las ventas pueden dejarlo negativo (política
// explícita del negocio), los ajustes manuales no. Version se incrementa en
// cada escritura de stock para que un escritor concurrente detecte conflictos.
type Product struct {
	ID           string
	Name         string
	Barcode      *string // único si está presente
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Stock        int64
	MinStock     int64
	DepartmentID *string
	SupplierID   *string
	Active       bool
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el producto está en o por debajo del umbral mínimo.
// Señal de solo lectura para reportes; el core no la aplica.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
