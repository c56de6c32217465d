package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/notetime/internal/watch"

	"github.com/spf13/cobra"
)

// eventCmd is the integration surface for editors and window-manager
// hooks: a one-shot POST to the watch daemon. Success prints nothing so
// hooks stay quiet.
var eventCmd = &cobra.Command{
	Use:   "event <focus|blur|switch> [note]",
	Short: "Send a focus event to the watch daemon",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEvent,
}

func init() {
	rootCmd.AddCommand(eventCmd)
}

func runEvent(_ *cobra.Command, args []string) error {
	ev := watch.Event{Type: args[0]}
	if len(args) == 2 {
		ev.Note = args[1]
	}
	if err := ev.Validate(); err != nil {
		return err
	}

	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := watch.NewClient(watchAddr(cfg))
	if err := client.PostEvent(ctx, ev); err != nil {
		return fmt.Errorf("posting %s event: %w", ev.Type, err)
	}
	return nil
}
