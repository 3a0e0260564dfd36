package preferences

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.Mutex
	prefs *models.Preferences
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(_ context.Context) (*models.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.prefs == nil {
		return models.DefaultPreferences(), nil
	}
	p := *r.prefs
	return &p, nil
}

func (r *MemoryRepository) Save(_ context.Context, prefs *models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *prefs
	r.prefs = &p
	return nil
}
