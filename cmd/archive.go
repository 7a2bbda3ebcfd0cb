package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a model",
	Long: `Archive (soft-hide) a model without deleting it.

Examples:
  curatr archive 42`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Restore an archived model",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnarchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	return archiveAction(cmd, args[0], true)
}

func runUnarchive(cmd *cobra.Command, args []string) error {
	return archiveAction(cmd, args[0], false)
}

func archiveAction(cmd *cobra.Command, arg string, archive bool) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid model id %q", arg)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	api, _, err := newRegistryClient(cmd.Context(), store)
	if err != nil {
		return err
	}

	if archive {
		if err := api.ArchiveModel(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Model %d archived\n", id)

		return nil
	}

	if err := api.UnarchiveModel(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Model %d unarchived\n", id)

	return nil
}
