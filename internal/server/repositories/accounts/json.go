package accounts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/recordstore"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// JSONRepository keeps all accounts in one JSON array document.
type JSONRepository struct {
	store *recordstore.Store
	path  string
}

func NewJSONRepository(store *recordstore.Store, path string) *JSONRepository {
	return &JSONRepository{store: store, path: path}
}

func (r *JSONRepository) All(ctx context.Context) ([]models.Account, error) {
	list, err := recordstore.Load(ctx, r.store, r.path, []models.Account{})
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if list == nil {
		list = []models.Account{}
	}
	return list, nil
}

// Create loads the whole collection, appends account and writes it back.
func (r *JSONRepository) Create(ctx context.Context, account *models.Account) error {
	list, err := r.All(ctx)
	if err != nil {
		return err
	}

	list = append(list, *account)

	if err := recordstore.Save(ctx, r.store, r.path, list); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}
