package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [text]",
		Short: "Seal text and print the envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			blob, err := appCtx.Codec.Encrypt(text, passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), blob)
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [envelope]",
		Short: "Open an envelope and print the text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			blob, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text, err := appCtx.Codec.Decrypt(trimBlob(blob), passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
