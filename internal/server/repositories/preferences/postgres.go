package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/dbx"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// PostgresRepository keeps preferences in a table constrained to one row.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.Preferences, error) {
	query :=
		`SELECT sfx, volume, include_rationale, geographic_region FROM preferences
		 WHERE id = 1
		 `

	p := &models.Preferences{}
	err := r.db.QueryRowContext(ctx, query).Scan(&p.SoundEffects, &p.Volume, &p.IncludeRationale, &p.GeographicRegion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultPreferences(), nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, prefs *models.Preferences) error {
	query :=
		`INSERT INTO preferences (id, sfx, volume, include_rationale, geographic_region)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   sfx = EXCLUDED.sfx,
		   volume = EXCLUDED.volume,
		   include_rationale = EXCLUDED.include_rationale,
		   geographic_region = EXCLUDED.geographic_region
		 `

	_, err := r.db.ExecContext(ctx, query, prefs.SoundEffects, prefs.Volume, prefs.IncludeRationale, prefs.GeographicRegion)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
