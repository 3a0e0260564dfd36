package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// MemoryRepository is a process-local Repository, used by tests and by
// fishctl dry runs.
type MemoryRepository struct {
	mu   sync.Mutex
	list []models.Account
}

func NewMemoryRepository(seed ...models.Account) *MemoryRepository {
	return &MemoryRepository{list: append([]models.Account(nil), seed...)}
}

func (r *MemoryRepository) All(_ context.Context) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Account, len(r.list))
	copy(out, r.list)
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, *account)
	return nil
}
