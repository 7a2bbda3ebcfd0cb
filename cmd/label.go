package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inovacc/curatr/internal/registry"
	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage model labels",
}

var labelSetCmd = &cobra.Command{
	Use:   "set <id> <label>...",
	Short: "Replace a model's labels",
	Long: `Replace the full label set of a model or one of its versions.

Examples:
  curatr label set 42 vision prod
  curatr label set 42 --version 3 staging   # Labels of version id 3
  curatr label set 42                       # Clear all labels`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLabelSet,
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelSetCmd)

	labelSetCmd.Flags().Int("version", 0, "Apply to this version id instead of the model")
}

func runLabelSet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid model id %q", args[0])
	}

	labels := args[1:]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	api, _, err := newRegistryClient(cmd.Context(), store)
	if err != nil {
		return err
	}

	versionID, _ := cmd.Flags().GetInt("version")

	if versionID > 0 {
		err = api.PatchModelVersion(cmd.Context(), id, versionID, registry.PatchVersionRequest{Labels: labels})
	} else {
		err = api.PatchModel(cmd.Context(), id, registry.PatchModelRequest{Labels: labels})
	}

	if err != nil {
		return err
	}

	if len(labels) == 0 {
		fmt.Printf("Cleared labels of model %d\n", id)
	} else {
		fmt.Printf("Set labels of model %d to %s\n", id, strings.Join(labels, ", "))
	}

	return nil
}
