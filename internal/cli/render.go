package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/statcardhq/statcard/pkg/config"
	"github.com/statcardhq/statcard/pkg/errors"
	"github.com/statcardhq/statcard/pkg/github"
	"github.com/statcardhq/statcard/pkg/stats"
	"github.com/statcardhq/statcard/pkg/svgpatch"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config      string   // config file path (default statcard.toml)
	templates   []string // template paths overriding the configured set
	user        string   // login overriding the configured one
	dryRun      bool     // fetch and report, write nothing
	interactive bool     // pick one template from an interactive list
}

// newRenderCmd creates the render command, the main entry point of the tool.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch account statistics and patch them into the card templates",
		Long: `Fetch the configured user's statistics from the GitHub GraphQL API and
write them into the placeholder slots of every configured SVG template.

All statistics are fetched before any template is touched: a failed API call
aborts the run with the templates unmodified.

Examples:
  statcard render
  statcard render --config cards/statcard.toml
  statcard render --template dark_mode.svg --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default "+config.DefaultPath+")")
	cmd.Flags().StringArrayVarP(&opts.templates, "template", "t", nil, "template to patch (repeatable, overrides config)")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "login to query (overrides config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "fetch and report without writing templates")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a single template interactively")

	return cmd
}

func runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.user != "" {
		cfg.Login = opts.user
	}
	if len(opts.templates) > 0 {
		cfg.Templates = opts.templates
	}
	if opts.interactive {
		picked, err := pickTemplate(cfg.Templates)
		if err != nil {
			return err
		}
		if picked == "" {
			printDetail("No template selected")
			return nil
		}
		cfg.Templates = []string{picked}
	}

	client := github.NewClient(ctx, cfg.Token, cfg.Login)
	logger.Debug("Fetching statistics", "login", cfg.Login, "window", cfg.CommitWindow)

	report := newRunReport()
	spinner := newSpinner(fmt.Sprintf("Fetching statistics for %s...", cfg.Login))
	spinner.Start()
	s, err := fetchStats(ctx, client, cfg, report)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return errors.Wrap(errors.ErrCodeRequestFailed, err, "fetching statistics for %s", cfg.Login)
	}
	spinner.Stop()
	printSuccess("Fetched statistics for %s", StyleHighlight.Render(cfg.Login))

	age := stats.FormatAge(cfg.Birthday, time.Now())
	texts := make(map[string]string)
	for slot, text := range s.Substitutions(cfg.Layout, age) {
		texts[slot.ID()] = text
	}

	if opts.dryRun {
		printInfo("Dry run, not writing templates")
	} else {
		for _, path := range cfg.Templates {
			if err := patchTemplate(ctx, path, texts); err != nil {
				return err
			}
			printFile(path)
		}
	}

	printNewline()
	printReport(report, client.Counter())
	return nil
}

// fetchStats performs every API call of a run, sequentially, recording the
// elapsed time of each under its report label. Any failure aborts
// immediately; by construction no template has been written yet.
func fetchStats(ctx context.Context, client *github.Client, cfg *config.Config, report *runReport) (stats.Stats, error) {
	var s stats.Stats

	user, elapsed, err := timed(func() (github.User, error) {
		return client.UserCreated(ctx)
	})
	if err != nil {
		return s, err
	}
	report.add("account data", elapsed)
	s.CreatedAt = user.CreatedAt

	now := time.Now()
	s.Commits, elapsed, err = timed(func() (int, error) {
		return client.Contributions(ctx, now.Add(-cfg.CommitWindow), now)
	})
	if err != nil {
		return s, err
	}
	report.add("commit count", elapsed)

	owned := []github.Affiliation{github.AffiliationOwner}
	s.Stars, elapsed, err = timed(func() (int, error) {
		return client.StarCount(ctx, owned)
	})
	if err != nil {
		return s, err
	}
	report.add("star count", elapsed)

	s.Repos, elapsed, err = timed(func() (int, error) {
		return client.RepoCount(ctx, owned)
	})
	if err != nil {
		return s, err
	}
	report.add("repo count", elapsed)

	s.Contributed, elapsed, err = timed(func() (int, error) {
		return client.RepoCount(ctx, github.AllAffiliations())
	})
	if err != nil {
		return s, err
	}
	report.add("contributed count", elapsed)

	s.Followers, elapsed, err = timed(func() (int, error) {
		return client.Followers(ctx)
	})
	if err != nil {
		return s, err
	}
	report.add("follower count", elapsed)

	return s, nil
}

// patchTemplate applies every substitution to the template at path and
// writes it back in place.
func patchTemplate(ctx context.Context, path string, texts map[string]string) error {
	logger := loggerFromContext(ctx)

	doc, err := svgpatch.Open(path)
	if err != nil {
		code := errors.ErrCodeInvalidTemplate
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrCodeTemplateNotFound
		}
		return errors.Wrap(code, err, "template %s", path)
	}
	applied := doc.Apply(texts)
	if applied == 0 {
		printWarning("%s has no placeholder slots", path)
	}
	logger.Debug("Patched template", "path", path, "slots", applied)

	return doc.Save()
}
