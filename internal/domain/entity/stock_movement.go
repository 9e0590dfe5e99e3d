package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeRECEIPT    = "RECEIPT"    // entrada: QtyChange positivo
	MovementTypeISSUE      = "ISSUE"      // salida: QtyChange negativo
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste: QtyChange con signo libre
)

// ValidMovementType indica si el tipo pertenece al conjunto cerrado de variantes.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeRECEIPT, MovementTypeISSUE, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// StockMovement representa un movimiento inmutable del libro de stock.
// QtyChange nunca es cero; su signo sigue la convención del tipo. Una vez
// creado solo admite borrado, que debe revertir su efecto sobre el saldo.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	QtyChange decimal.Decimal
	Note      string
	Location  string
	CreatedAt time.Time
}
