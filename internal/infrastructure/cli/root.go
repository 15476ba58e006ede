package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Version string
	Verbose bool
}

// NewRootCmd wires the cobra root command. Running nlsh without arguments
// enters the interactive loop; arguments are treated as a one-shot prompt.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.Session.Prompter = NewPrompter()
	container.Session.Factory = withSpinner(container.Session.Factory)

	repl := &REPL{
		Session:   container.Session,
		Store:     container.Config,
		Clipboard: SystemClipboard{},
	}

	root := &cobra.Command{
		Use:   "nlsh [prompt]",
		Short: "Natural-language shell assistant",
		Long: "nlsh translates natural language into shell commands using the\n" +
			"configured AI provider, asks before running them, and keeps the\n" +
			"conversation context so follow-ups like \"do that again\" work.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return repl.Run(cmd.Context())
			}
			return repl.RunOnce(cmd.Context(), strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand(opts.Version))
	return root, nil
}
