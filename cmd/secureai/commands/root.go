package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"secureai/internal/app"
)

var (
	configPath  string
	home        string
	postgresDSN string
	amqpURL     string
	passphrase  string
	username    string

	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:          "secureai",
		Short:        "End-to-end encrypted chat CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			// Flags override file and environment values.
			if home != "" {
				v.Set("home", home)
			}
			if postgresDSN != "" {
				v.Set("postgres_dsn", postgresDSN)
			}
			if amqpURL != "" {
				v.Set("amqp_url", amqpURL)
			}
			if passphrase != "" {
				v.Set("passphrase", passphrase)
			}

			cfg, err := app.LoadConfig(v, configPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			appCtx, err = app.NewWire(cmd.Context(), cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./secureai.yaml)")
	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.secureai)")
	root.PersistentFlags().StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN; empty selects local file/memory stores")
	root.PersistentFlags().StringVar(&amqpURL, "amqp", "", "AMQP broker URL; empty selects the in-process feed")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting file-backed private keys")
	root.PersistentFlags().StringVarP(&username, "user", "u", "", "acting user ID")

	root.AddCommand(initCmd(), fingerprintCmd(), sendCmd(), historyCmd(), watchCmd(), presenceCmd())
	return root.Execute()
}

var errNoUser = errors.New("--user required")

func requireUser() error {
	if username == "" {
		return errNoUser
	}
	return nil
}
