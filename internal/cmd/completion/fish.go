package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for cfmd.

To load completions in your current shell session:

  cfmd completion fish | source

To load completions for every new session:

  cfmd completion fish > ~/.config/fish/completions/cfmd.fish`,
		Example: `  # Load in current session
  cfmd completion fish | source

  # Install permanently
  cfmd completion fish > ~/.config/fish/completions/cfmd.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
