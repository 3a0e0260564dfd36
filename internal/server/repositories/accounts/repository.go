// Package accounts stores the user account collection. Records keep their
// registration order.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// Repository is the persistence contract for accounts. It does not enforce
// uniqueness; callers serialize check-then-create themselves.
type Repository interface {
	// All returns every account in registration order.
	All(ctx context.Context) ([]models.Account, error)
	// Create appends one account.
	Create(ctx context.Context, account *models.Account) error
}
