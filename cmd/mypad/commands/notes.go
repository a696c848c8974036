package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// seal <name> [text]: encrypt text into a named note.
func sealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal <name> [text]",
		Short: "Seal text into a named note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			name := args[0]
			text, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			blob, err := appCtx.Codec.Encrypt(text, passphrase)
			if err != nil {
				return err
			}
			if err := appCtx.Notes.SaveSealed(name, blob); err != nil {
				return fmt.Errorf("saving note %q: %w", name, err)
			}
			appCtx.Log.Debug().Str("note", name).Msg("note sealed")
			printSuccess(cmd.ErrOrStderr(), "sealed %s", name)
			return nil
		},
	}
}

// open <name>: decrypt a named note to stdout.
func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a named note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			blob, err := appCtx.Notes.LoadSealed(args[0])
			if err != nil {
				return err
			}
			text, err := appCtx.Codec.Decrypt(blob, passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func notesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "List stored notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := appCtx.Notes.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), mutedText("no notes"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return nil
		},
	}
}

func trimBlob(s string) string { return strings.TrimSpace(s) }
