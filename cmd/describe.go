package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inovacc/curatr/internal/registry"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <id> <text>",
	Short: "Set a model's description",
	Long: `Set the free-form description of a model.

Examples:
  curatr describe 42 "ResNet-50 fine-tuned on product images"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDescribe,
}

var metaCmd = &cobra.Command{
	Use:   "meta <id> <key=value>...",
	Short: "Set model metadata entries",
	Long: `Replace metadata entries on a model. Each argument is a key=value
pair; values are stored as strings.

Examples:
  curatr meta 42 framework=pytorch dataset=imagenet`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMeta,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(metaCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid model id %q", args[0])
	}

	description := strings.Join(args[1:], " ")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	api, _, err := newRegistryClient(cmd.Context(), store)
	if err != nil {
		return err
	}

	if err := api.PatchModel(cmd.Context(), id, registry.PatchModelRequest{Description: &description}); err != nil {
		return err
	}

	fmt.Printf("Updated description of model %d\n", id)

	return nil
}

func runMeta(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid model id %q", args[0])
	}

	metadata := make(map[string]any, len(args)-1)

	for _, pair := range args[1:] {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid metadata pair %q, expected key=value", pair)
		}

		metadata[key] = value
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

	if err := api.PatchModel(cmd.Context(), id, registry.PatchModelRequest{Metadata: metadata}); err != nil {
		return err
	}

	fmt.Printf("Updated metadata of model %d\n", id)

	return nil
}
