package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/statcardhq/statcard/pkg/buildinfo"
)

// Execute runs the statcard CLI and returns an error if any command fails.
//
// The root command wires up the render and completion subcommands and
// configures logging based on the --verbose flag. The logger is attached to
// the context and accessible to all commands via loggerFromContext; every
// run is tagged with a short id so interleaved CI logs stay attributable.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "statcard",
		Short:        "statcard renders GitHub account statistics into SVG profile cards",
		Long:         `statcard fetches a user's account statistics from the GitHub GraphQL API and patches them into SVG card templates, recomputing the justification dots so the stat lines stay aligned as the numbers grow.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level).With("run", uuid.NewString()[:8])
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
