package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a model",
	Long: `Delete a model and all its versions from the registry.

A confirmation prompt is shown unless --yes is given.

Examples:
  curatr delete 42
  curatr delete 42 --yes
  curatr delete 42 --version 3   # Delete only version 3`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	deleteCmd.Flags().Int("version", 0, "Delete only this version number's entry (by version id)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid model id %q", args[0])
	}

	versionID, _ := cmd.Flags().GetInt("version")
	yes, _ := cmd.Flags().GetBool("yes")

	target := fmt.Sprintf("model %d", id)
	if versionID > 0 {
		target = fmt.Sprintf("version %d of model %d", versionID, id)
	}

	if !yes && !confirmPrompt(fmt.Sprintf("Delete %s? This cannot be undone", target)) {
		fmt.Println("Aborted")

		return nil
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

	if versionID > 0 {
		if err := api.DeleteModelVersion(cmd.Context(), id, versionID); err != nil {
			return err
		}
	} else if err := api.DeleteModel(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", target)

	return nil
}

// confirmPrompt asks a yes/no question on stdin.
func confirmPrompt(question string) bool {
	fmt.Printf("%s [y/N]: ", question)

	reader := bufio.NewReader(os.Stdin)

	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
