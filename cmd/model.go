package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/curatr/internal/cli"
	"github.com/inovacc/curatr/internal/notify"
	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model <id>",
	Short: "Open a model's detail page",
	Long: `Open the interactive detail page for one model.

The page shows the model's versions and supports editing the description,
labels and metadata, deleting versions, and deleting the model itself.

Examples:
  curatr model 42`,
	Args: cobra.ExactArgs(1),
	RunE: runModel,
}

func init() {
	rootCmd.AddCommand(modelCmd)
}

func runModel(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid model id %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	api, cfg, err := newRegistryClient(cmd.Context(), store)
	if err != nil {
		return err
	}

	events := notify.NewMemory(50)

	page := cli.NewModelDetail(api, id, currentUser(cfg), events, pollInterval(cfg), slog.Default())

	out, err := tea.NewProgram(page, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if detail, ok := out.(cli.ModelDetailModel); ok && detail.Deleted() {
		fmt.Printf("Model %d deleted\n", id)
	}

	return nil
}
