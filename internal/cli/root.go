package cli

import (
	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/spf13/cobra"
)

var version = "dev"

// NewRootCmd builds the fishctl command tree around a.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fishctl",
		Short: "Operator tool for " + common.ProductName,
		Long: `fishctl works directly on the storage used by the FishFarmer server.
It registers and checks accounts, shows and edits the global preferences,
applies database migrations and imports json data into a database.

The storage is selected the same way as for the server: defaults, then the
environment (FISHFARMER_STORAGE, FISHFARMER_DATA_DIR, ... and a .env file),
then the flags below.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			return a.migrate(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.config.DataDir, "data-dir", a.config.DataDir, "data directory (json and sqlite backends)")
	pf.StringVar(&a.config.StorageBackend, "storage", a.config.StorageBackend, "storage backend (json|sqlite|postgres)")
	pf.StringVar(&a.config.DatabaseDSN, "dsn", a.config.DatabaseDSN, "PostgreSQL DSN")
	pf.IntVar(&a.config.BcryptCost, "bcrypt-cost", a.config.BcryptCost, "bcrypt cost for new passwords")
	pf.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level")
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default ./.env when present)")

	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newAccountsCmd(a),
		newPrefsCmd(a),
		newMigrateCmd(a),
		newImportCmd(a),
	)
	return root
}
