// Package preferences stores the single deployment-wide preference object.
package preferences

import (
	"context"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// Repository reads and replaces the stored preferences. Get returns the
// defaults when nothing has been saved and never persists them.
type Repository interface {
	Get(ctx context.Context) (*models.Preferences, error)
	Save(ctx context.Context, prefs *models.Preferences) error
}
