package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mypad/internal/relay"
)

// chat <url>: print frames from other clients and send stdin lines.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <ws-url>",
		Short: "Join a padserver realtime channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runChat(ctx, cmd, args[0])
		},
	}
}

func runChat(ctx context.Context, cmd *cobra.Command, url string) error {
	client, err := relay.Dial(ctx, url, nil)
	if err != nil {
		return err
	}
	defer client.Close()
	printSuccess(cmd.ErrOrStderr(), "connected to %s", url)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recvErr := make(chan error, 1)
	go func() {
		out := cmd.OutOrStdout()
		for {
			text, err := client.Receive(ctx)
			if err != nil {
				recvErr <- err
				return
			}
			fmt.Fprintf(out, "%s %s\n", peerText("<"), text)
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			if err := client.Send(ctx, line); err != nil {
				return err
			}
		case err := <-recvErr:
			if errors.Is(err, context.Canceled) || errors.Is(err, relay.ErrClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			return nil
		}
	}
}
