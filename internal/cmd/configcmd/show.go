package configcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display a configuration profile",
		Long:  `Display a configuration profile with credential source indicators.`,
		Example: `  # Show the default profile
  cfmd config show

  # Show a named profile
  cfmd config show --profile work`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			profile, _ := cmd.Flags().GetString("profile")
			return runShow(profile, noColor)
		},
	}

	return cmd
}

func runShow(profileName string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}
	if profileName == "" {
		profileName = config.DefaultProfile
	}

	configPath := config.DefaultConfigPath()

	var fileProfile config.Profile
	fileCfg, fileErr := config.Load(configPath)
	if fileErr == nil {
		fileProfile, _ = fileCfg.Profile(profileName)
	}

	effective := fileProfile
	effective.LoadFromEnv()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, secret bool, envVar string) {
		_, _ = bold.Printf("%-10s", label+":")
		if value == "" {
			_, _ = dim.Println("-")
			return
		}

		display := value
		if secret && len(value) > 8 {
			display = value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
		} else if secret {
			display = strings.Repeat("*", len(value))
		}

		fmt.Print(display)

		source := "config"
		if v := os.Getenv(envVar); v != "" && v == value {
			source = envVar
		} else if fileValue != value || fileErr != nil {
			source = "-"
		}

		_, _ = dim.Printf("  (source: %s)\n", source)
	}

	_, _ = bold.Printf("Profile: %s\n\n", profileName)
	printField("URL", effective.BaseURL, fileProfile.BaseURL, false, "CFMD_URL")
	printField("Username", effective.Username, fileProfile.Username, false, "CFMD_USERNAME")
	printField("Token", effective.Token, fileProfile.Token, true, "CFMD_TOKEN")
	printField("Password", effective.Password, fileProfile.Password, true, "CFMD_PASSWORD")

	fmt.Println()
	_, _ = dim.Printf("Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Println("(file not found)")
	}

	return nil
}
