package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro de transacciones.
// El tipo es un tag explícito: nunca se infiere del signo del total.
const (
	EntryKindSale   = "SALE"
	EntryKindReturn = "RETURN"
)

// LedgerEntry es un asiento inmutable del libro de transacciones (venta o
// devolución). No existen operaciones de edición ni borrado: una corrección
// es siempre un asiento nuevo.
//
// Convención de signos (se conserva para que las sumas agreguen el efecto
// neto): una venta guarda total y cantidades positivas; una devolución guarda
// total y cantidades negativas.
type LedgerEntry struct {
	ID              string
	Kind            string // SALE | RETURN
	Total           decimal.Decimal
	PaymentMethodID *string
	UserID          string
	Reason          string // solo devoluciones
	Notes           string
	CreatedAt       time.Time
	Lines           []LedgerLine
}

// LedgerLine es una fila producto/cantidad/precio de un asiento.
// Price es un snapshot del precio al momento de la transacción.
type LedgerLine struct {
	ID        string
	EntryID   string
	ProductID string
	Quantity  int64 // con signo, consistente con el Kind del asiento
	Price     decimal.Decimal
}
