// Package engine implements the money movement core of the caixinhas
// backend: income allocation across envelopes, envelope debits, settlements
// against debts, goals, card invoices and wishlist items, and the
// reverse-then-reapply discipline for transaction edits.
//
// Every operation is one database transaction; when any step fails, no write
// of the operation is visible. Balance changes are written as relative
// updates (allocated = allocated + ?), so two concurrent operations on the
// same envelope cannot lose each other's delta.
//
// The HTTP layer owns the request-shape validation and resolves the
// requesting user; the engine re-checks existence and ownership of the
// entities it loads itself (debts, goals, invoices, wishlist items,
// transactions) and trusts envelope IDs that the caller already verified.
package engine

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Engine executes all balance-changing operations.
type Engine struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New returns an Engine writing through the given database handle.
func New(db *gorm.DB, log zerolog.Logger) *Engine {
	return &Engine{db: db, log: log}
}
