package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/spf13/cobra"
)

func newPrefsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the global preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(a), newPrefsSetCmd(a), newPrefsResetCmd(a))
	return cmd
}

func (a *App) printPrefs(p *models.Preferences) error {
	b, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func newPrefsShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.prefs.Get(cmd.Context())
			if err != nil {
				return err
			}
			return a.printPrefs(p)
		},
	}
}

func newPrefsSetCmd(a *App) *cobra.Command {
	var (
		sfx       bool
		volume    int
		rationale bool
		region    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change selected preferences, keeping the others",
		Long: `Change selected preferences. Only the flags given are changed; the
result is validated and saved as a whole.

Examples:
  fishctl prefs set --volume 80
  fishctl prefs set --region southeast-asia --rationale=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.prefs.Get(cmd.Context())
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("sfx") {
				p.SoundEffects = sfx
			}
			if f.Changed("volume") {
				p.Volume = volume
			}
			if f.Changed("rationale") {
				p.IncludeRationale = rationale
			}
			if f.Changed("region") {
				p.GeographicRegion = region
			}

			if err := a.prefs.Set(cmd.Context(), p); err != nil {
				return err
			}
			return a.printPrefs(p)
		},
	}

	cmd.Flags().BoolVar(&sfx, "sfx", models.DefaultSoundEffects, "sound effects")
	cmd.Flags().IntVar(&volume, "volume", models.DefaultVolume, "volume, 0..100")
	cmd.Flags().BoolVar(&rationale, "rationale", models.DefaultIncludeRationale, "ask the advisor for a detailed rationale")
	cmd.Flags().StringVar(&region, "region", models.DefaultRegion, "geographic region")
	return cmd
}

func newPrefsResetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := models.DefaultPreferences()
			if err := a.prefs.Set(cmd.Context(), p); err != nil {
				return err
			}
			return a.printPrefs(p)
		},
	}
}

func newMigrateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply pending database migrations for the sqlite and postgres backends.
Every fishctl command migrates before running; this command does nothing else.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintf(a.out, "storage %q is up to date\n", a.config.StorageBackend)
			return nil
		},
	}
}
