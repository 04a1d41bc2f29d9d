package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for cfmd.

To load completions in your current shell session:

  source <(cfmd completion bash)

To load completions for every new session:

  # Linux
  cfmd completion bash > /etc/bash_completion.d/cfmd

  # macOS (requires bash-completion)
  cfmd completion bash > $(brew --prefix)/etc/bash_completion.d/cfmd`,
		Example: `  # Load in current session
  source <(cfmd completion bash)

  # Install permanently (Linux)
  cfmd completion bash | sudo tee /etc/bash_completion.d/cfmd > /dev/null

  # Install permanently (macOS with Homebrew)
  cfmd completion bash > $(brew --prefix)/etc/bash_completion.d/cfmd`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
