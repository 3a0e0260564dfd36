package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/fishfarmer/internal/recordstore"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/repomanager"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy JSON-file data into the sqlite or postgres backend",
		Long: `Read users.json and preferences.json from a data directory of the json
backend and write them into the configured database in one transaction.
Accounts keep their order and password hashes. If any account collides
with one already stored nothing is written.

Examples:
  fishctl --storage sqlite import --from /srv/fishfarmer
  fishctl --storage postgres --dsn postgres://... import --from .`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			imp, ok := a.repos.(repomanager.Importer)
			if !ok {
				return fmt.Errorf("storage %q does not support import", a.config.StorageBackend)
			}

			ctx := cmd.Context()
			store := recordstore.New(a.logger)

			list, err := accounts.NewJSONRepository(store, filepath.Join(from, a.config.UsersFile)).All(ctx)
			if err != nil {
				return err
			}

			var prefs *models.Preferences
			prefsPath := filepath.Join(from, a.config.PreferencesFile)
			if _, err := os.Stat(prefsPath); err == nil {
				if prefs, err = preferences.NewJSONRepository(store, prefsPath).Get(ctx); err != nil {
					return err
				}
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := imp.Import(ctx, list, prefs); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "imported %d account(s)", len(list))
			if prefs != nil {
				fmt.Fprint(a.out, " and preferences")
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "data directory holding the json files")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
