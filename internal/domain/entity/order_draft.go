package entity

import "time"

// OrderDraft es una intención de reposición pendiente para un producto
// (la "lista de compras" de la barra lateral). Vive hasta que se consolida
// en un SupplierOrder o se descarta; no tiene estado propio.
type OrderDraft struct {
	ID         string
	ProductID  string
	SupplierID *string // opcional: restringe a qué proveedor puede consolidarse
	Quantity   int64
	Notes      string
	CreatedAt  time.Time
}
