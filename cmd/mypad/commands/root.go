package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mypad/internal/app"
	"mypad/internal/envelope"
	"mypad/internal/store"
)

const passphraseEnv = "MYPAD_PASSPHRASE"

var (
	configPath string
	notesDir   string
	passphrase string
	verbose    bool

	appCtx *appContext
)

// appContext carries what subcommands share.
type appContext struct {
	Codec *envelope.Codec
	Notes *store.NoteFileStore
	Log   zerolog.Logger
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mypad",
		Short:         "Passphrase-sealed notes and a shared realtime scratchpad",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if notesDir != "" {
				cfg.NotesDir = notesDir
			}
			if passphrase == "" {
				passphrase = os.Getenv(passphraseEnv)
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			local, err := app.NewLocal(cfg)
			if err != nil {
				return err
			}
			appCtx = &appContext{
				Codec: local.Codec,
				Notes: local.Notes,
				Log:   app.NewLogger(level, "console", cmd.ErrOrStderr()),
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&notesDir, "notes", "", "notes directory (default ~/.mypad/notes)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase (or $"+passphraseEnv+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(encryptCmd(), decryptCmd(), sealCmd(), openCmd(), notesCmd(), chatCmd())

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p or $%s)", passphraseEnv)
	}
	return nil
}
