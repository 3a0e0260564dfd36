package preferences

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/recordstore"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// JSONRepository keeps preferences in one JSON object document.
type JSONRepository struct {
	store *recordstore.Store
	path  string
}

func NewJSONRepository(store *recordstore.Store, path string) *JSONRepository {
	return &JSONRepository{store: store, path: path}
}

func (r *JSONRepository) Get(ctx context.Context) (*models.Preferences, error) {
	p, err := recordstore.Load[*models.Preferences](ctx, r.store, r.path, nil)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	if p == nil {
		return models.DefaultPreferences(), nil
	}
	return p, nil
}

func (r *JSONRepository) Save(ctx context.Context, prefs *models.Preferences) error {
	if err := recordstore.Save(ctx, r.store, r.path, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
