package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/internal/config"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
)

// NewCmdDelete creates the config delete command.
func NewCmdDelete() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <profile>",
		Short: "Delete a configuration profile",
		Example: `  # Delete the work profile
  cfmd config delete work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runDelete(args[0], force, output, noColor)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runDelete(profileName string, force bool, output string, noColor bool) error {
	configPath := config.DefaultConfigPath()
	renderer := view.NewRenderer(view.Format(output), noColor)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := cfg.Profile(profileName); err != nil {
		return err
	}

	if !force {
		fmt.Printf("Delete profile %q? This cannot be undone. (y/N): ", profileName)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			renderer.RenderText("Deletion cancelled.")
			return nil
		}
	}

	cfg.DeleteProfile(profileName)
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	renderer.Success(fmt.Sprintf("Deleted profile %q", profileName))
	return nil
}
