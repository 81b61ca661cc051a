package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"esp_panel/internal/panel"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the temperatures every 2 seconds until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var s *session
	s, err := openSession(ctx, panel.WithRenderHook(func(panel.Reading) {
		fmt.Fprintln(cmd.OutOrStdout(), formatCells(s.panel.Document()))
	}))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatCells(s.panel.Document()))
	s.panel.Run(ctx)
	return nil
}

// formatCells prints the three temperature cells as they currently read.
func formatCells(doc *panel.Document) string {
	parts := make([]string, 0, len(panel.TempIDs))
	for _, id := range panel.TempIDs {
		parts = append(parts, id+"="+doc.Text(id))
	}
	return strings.Join(parts, "  ")
}
