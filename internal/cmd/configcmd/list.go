package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/internal/config"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
)

// NewCmdList creates the config list command.
func NewCmdList() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved configuration profiles",
		Example: `  # List all profiles
  cfmd config list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runList(output, noColor)
		},
	}

	return cmd
}

func runList(output string, noColor bool) error {
	if err := view.ValidateFormat(output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(output), noColor)

	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil || len(cfg.Profiles) == 0 {
		if output == "json" {
			return renderer.RenderJSON([]interface{}{})
		}
		renderer.RenderText("No saved profiles found. Run 'cfmd init' to create one.")
		return nil
	}

	headers := []string{"PROFILE", "URL", "AUTH"}
	var rows [][]string
	for _, name := range cfg.ProfileNames() {
		profile := cfg.Profiles[name]
		auth := "password"
		if profile.Token != "" {
			auth = "token"
		}
		rows = append(rows, []string{name, profile.BaseURL, auth})
	}

	renderer.RenderTable(headers, rows)
	return nil
}
