package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	errorText   = color.New(color.FgRed).SprintFunc()
	mutedText   = color.New(color.FgHiBlack).SprintFunc()
	peerText    = color.New(color.FgCyan).SprintFunc()
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successText("✓"), fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errorText("✗"), fmt.Sprintf(format, args...))
}

// readInput joins args, or reads all of stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}
