// Package init provides the init command for cfmd.
package init

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		url      string
		username string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize cfmd configuration",
		Long: `Initialize cfmd with your Confluence Data Center credentials.

This command guides you through setting up your Confluence URL and
credentials. A personal access token is preferred; a username/password
pair also works. The configuration is saved to ~/.config/cfmd/config.yml.

To generate a personal access token, open your Confluence profile and
go to Settings > Personal Access Tokens.`,
		Example: `  # Interactive setup
  cfmd init

  # Pre-populate URL
  cfmd init --url https://confluence.mycompany.com

  # Set up a second instance under a named profile
  cfmd init --profile work`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, _ := cmd.Flags().GetString("profile")
			return runInit(url, username, profile, noVerify)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Confluence URL (e.g., https://confluence.mycompany.com)")
	cmd.Flags().StringVar(&username, "username", "", "Your Confluence username")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip connection verification")

	return cmd
}

func runInit(prefillURL, prefillUsername, profileName string, noVerify bool) error {
	configPath := config.DefaultConfigPath()
	if profileName == "" {
		profileName = config.DefaultProfile
	}

	cfg := &config.Config{}
	if loaded, err := config.Load(configPath); err == nil {
		cfg = loaded
	}

	if _, err := cfg.Profile(profileName); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Profile already exists").
			Description(fmt.Sprintf("Overwrite profile %q in %s?", profileName, configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	profile := config.Profile{BaseURL: prefillURL, Username: prefillUsername}
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Confluence URL").
				Description("Your Confluence Data Center instance URL").
				Placeholder("https://confluence.mycompany.com").
				Value(&profile.BaseURL).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("URL is required")
					}
					if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
						return fmt.Errorf("URL must start with http:// or https://")
					}
					return nil
				}),

			huh.NewInput().
				Title("Username").
				Description("Leave blank to authenticate with a bearer token only").
				Placeholder("jdoe").
				Value(&profile.Username),

			huh.NewInput().
				Title("Personal Access Token").
				Description("Settings > Personal Access Tokens (leave blank to use a password)").
				EchoMode(huh.EchoModePassword).
				Value(&profile.Token),

			huh.NewInput().
				Title("Password").
				Description("Only needed when no token is provided").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	profile.BaseURL = strings.TrimSuffix(profile.BaseURL, "/")
	profile.Password = password

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !noVerify {
		fmt.Print("Verifying connection... ")
		user, err := verifyConnection(&profile)
		if err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Printf("success! (authenticated as %s)\n", user.DisplayName)
	}

	cfg.SetProfile(profileName, profile)
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  cfmd page recent")
	fmt.Println("  cfmd page view <page-url>")

	return nil
}

func verifyConnection(profile *config.Profile) (*api.User, error) {
	client := api.NewClient(profile.BaseURL, profile.Username, profile.Password, profile.Token)
	user, err := client.CurrentUser(context.Background())
	if err != nil {
		var apiErr *api.ErrorResponse
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case 401:
				return nil, fmt.Errorf("authentication failed - check your credentials")
			case 403:
				return nil, fmt.Errorf("access denied - check your permissions")
			}
		}
		return nil, err
	}
	return user, nil
}
