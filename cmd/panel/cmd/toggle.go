package cmd

import (
	"fmt"
	"strings"

	"esp_panel/internal/panel"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:       "toggle on|off",
	Short:     "Flip the LED switch",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off", "1", "0"},
	RunE:      runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	on, err := parseSwitch(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	s.panel.SetSwitch(cmd.Context(), on)
	s.panel.Wait()

	doc := s.panel.Document()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", panel.IDContainer, strings.Join(doc.Classes(panel.IDContainer), " "))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", panel.IDToggle, strings.Join(doc.Classes(panel.IDToggle), " "))
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1":
		return true, nil
	case "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}
