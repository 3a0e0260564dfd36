package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/dbx"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Preferences, error) {
	p := &models.Preferences{}
	err := r.db.QueryRowContext(ctx,
		`SELECT sfx, volume, include_rationale, geographic_region FROM preferences WHERE id = 1`,
	).Scan(&p.SoundEffects, &p.Volume, &p.IncludeRationale, &p.GeographicRegion)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, prefs *models.Preferences) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (id, sfx, volume, include_rationale, geographic_region) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sfx = excluded.sfx,
			volume = excluded.volume,
			include_rationale = excluded.include_rationale,
			geographic_region = excluded.geographic_region
	`, prefs.SoundEffects, prefs.Volume, prefs.IncludeRationale, prefs.GeographicRegion)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
