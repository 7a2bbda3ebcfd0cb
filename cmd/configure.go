package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the registry connection",
	Long: `Configure the registry endpoint, credentials and acting user.

The API token is read with echo disabled and stored in the local settings
database. Flags override the interactive prompts.

Examples:
  curatr configure
  curatr configure --registry-url https://registry.example.com --username maria`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().String("registry-url", "", "Registry API base URL")
	configureCmd.Flags().String("username", "", "Acting username")
	configureCmd.Flags().Bool("admin", false, "Mark the acting user as an administrator")
	configureCmd.Flags().Int("poll-interval", 0, "Page refresh cadence in seconds")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cfg, err := store.GetConfig()
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("registry-url"); v != "" {
		cfg.RegistryURL = v
	} else if v := promptLine(fmt.Sprintf("Registry URL [%s]: ", cfg.RegistryURL)); v != "" {
		cfg.RegistryURL = v
	}

	if v, _ := cmd.Flags().GetString("username"); v != "" {
		cfg.Username = v
	} else if v := promptLine(fmt.Sprintf("Username [%s]: ", cfg.Username)); v != "" {
		cfg.Username = v
	}

	if cmd.Flags().Changed("admin") {
		cfg.Admin, _ = cmd.Flags().GetBool("admin")
	}

	if v, _ := cmd.Flags().GetInt("poll-interval"); v > 0 {
		cfg.PollInterval = v
	}

	token, err := promptForToken("API token (leave empty to keep current): ")
	if err != nil {
		return err
	}

	if token != "" {
		cfg.Token = token
	}

	if err := store.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Configured registry %s as %s\n", cfg.RegistryURL, cfg.Username)

	return nil
}

func promptLine(prompt string) string {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}

	return strings.TrimSpace(line)
}

// promptForToken prompts the user for the API token without echoing
func promptForToken(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())

	byteToken, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(byteToken)), nil
}
