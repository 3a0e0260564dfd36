package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/preferences"
)

// PreferenceService reads and replaces the preference singleton. Saves are
// last-writer-wins.
type PreferenceService struct {
	repo   preferences.Repository
	logger logging.Logger
}

func NewPreferenceService(repo preferences.Repository, logger logging.Logger) *PreferenceService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &PreferenceService{repo: repo, logger: logger.With("module", "preferences")}
}

// Get returns the stored preferences, or the defaults if none were saved.
func (s *PreferenceService) Get(ctx context.Context) (*models.Preferences, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading preferences: %w", err)
	}
	return p, nil
}

// Set replaces the stored preferences with prefs as a whole.
func (s *PreferenceService) Set(ctx context.Context, prefs *models.Preferences) error {
	if err := ValidatePreferences(prefs); err != nil {
		return err
	}

	s.logger.Info(ctx, "saving preferences",
		"sfx", prefs.SoundEffects,
		"volume", prefs.Volume,
		"includeRationale", prefs.IncludeRationale,
		"geographicRegion", prefs.GeographicRegion,
	)

	if err := s.repo.Save(ctx, prefs); err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	return nil
}

// ValidatePreferences checks value ranges; failures wrap
// common.ErrInvalidPreferences.
func ValidatePreferences(p *models.Preferences) error {
	if p == nil {
		return fmt.Errorf("%w: missing body", common.ErrInvalidPreferences)
	}
	if p.Volume < models.MinVolume || p.Volume > models.MaxVolume {
		return fmt.Errorf("%w: volume must be between %d and %d", common.ErrInvalidPreferences, models.MinVolume, models.MaxVolume)
	}
	if strings.TrimSpace(p.GeographicRegion) == "" {
		return fmt.Errorf("%w: geographicRegion must not be empty", common.ErrInvalidPreferences)
	}
	return nil
}
