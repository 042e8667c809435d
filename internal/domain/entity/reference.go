package entity

import "time"

// PaymentMethod método de pago. AffectsCash marca los métodos que suman al
// arqueo de caja del día.
type PaymentMethod struct {
	ID          string
	Name        string
	AffectsCash bool
}

// Supplier proveedor de mercadería.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// Department departamento o sección del catálogo.
type Department struct {
	ID   string
	Name string
}
