package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/curatr/internal/cli"
	"github.com/inovacc/curatr/internal/controller"
	"github.com/inovacc/curatr/internal/notify"
	"github.com/inovacc/curatr/internal/registry"
	"github.com/inovacc/curatr/internal/settings"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Browse the model list",
	Long: `Open the interactive model list page.

The page remembers its sort, filters and pagination across sessions.
Use --plain to print the current page as text instead, honoring the
persisted settings plus any filter flags.

Examples:
  curatr models                      # Interactive table
  curatr models --plain              # Print the current page
  curatr models --plain --archived   # Include archived models
  curatr models --plain --name bert  # Filter by name substring`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().Bool("plain", false, "Print the list as text instead of opening the table")
	modelsCmd.Flags().Bool("archived", false, "Include archived models (plain mode)")
	modelsCmd.Flags().String("name", "", "Filter by name substring (plain mode)")
	modelsCmd.Flags().String("description", "", "Filter by description substring (plain mode)")
	modelsCmd.Flags().StringSlice("labels", nil, "Filter by labels (plain mode)")
	modelsCmd.Flags().StringSlice("users", nil, "Filter by owning users (plain mode)")
	modelsCmd.Flags().Int("limit", 0, "Page size (plain mode, 0 = persisted setting)")
	modelsCmd.Flags().Int("offset", 0, "Page offset (plain mode)")
}

func runModels(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	api, cfg, err := newRegistryClient(cmd.Context(), store)
	if err != nil {
		return err
	}

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return printModels(cmd, api, store)
	}

	events := notify.NewMemory(50)
	user := currentUser(cfg)
	interval := pollInterval(cfg)

	// The list and detail pages alternate until the user quits the list.
	for {
		ctrl, err := controller.NewListController(api, store, controller.ListControllerOptions{
			Logger:   slog.Default(),
			Notifier: notify.Multi{notify.NewSlog(slog.Default()), events},
		})
		if err != nil {
			return err
		}

		page := cli.NewModelList(ctrl, user, events, interval)

		out, err := tea.NewProgram(page, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}

		list, ok := out.(cli.ModelListModel)
		if !ok || list.Selected() == nil {
			return nil
		}

		detail := cli.NewModelDetail(api, list.Selected().ID, user, events, interval, slog.Default())

		if _, err := tea.NewProgram(detail, tea.WithAltScreen()).Run(); err != nil {
			return err
		}
	}
}

// printModels renders one page of the list as text. The persisted settings
// are the baseline; filter flags override for this invocation only.
func printModels(cmd *cobra.Command, api registry.API, store settings.Store) error {
	vs, err := store.Load(controller.ListPage)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetBool("archived"); v {
		vs.Archived = true
	}

	if v, _ := cmd.Flags().GetString("name"); v != "" {
		vs.Name = v
	}

	if v, _ := cmd.Flags().GetString("description"); v != "" {
		vs.Description = v
	}

	if v, _ := cmd.Flags().GetStringSlice("labels"); len(v) > 0 {
		vs.Labels = v
	}

	if v, _ := cmd.Flags().GetStringSlice("users"); len(v) > 0 {
		vs.Users = v
	}

	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		vs.Limit = v
	}

	if v, _ := cmd.Flags().GetInt("offset"); v > 0 {
		vs.Offset = v
	}

	resp, err := api.ListModels(cmd.Context(), registry.ListModelsRequest{
		Archived:    vs.Archived,
		Name:        vs.Name,
		Description: vs.Description,
		Labels:      vs.Labels,
		Users:       vs.Users,
		SortKey:     vs.SortKey,
		SortDesc:    vs.SortDesc,
		Limit:       vs.Limit,
		Offset:      vs.Offset,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tVERSIONS\tUPDATED\tOWNER\tLABELS")

	for _, item := range resp.Models {
		name := item.Name
		if item.Archived {
			name += " (archived)"
		}

		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			item.ID, name, item.NumVersions,
			item.LastUpdatedTime.Format("2006-01-02 15:04"),
			item.Username, strings.Join(item.Labels, ","))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("%d-%d of %d\n", vs.Offset+1, min(vs.Offset+len(resp.Models), resp.Total), resp.Total)

	return nil
}
