package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/qgistidy/internal/config"
	"github.com/vvka-141/qgistidy/internal/files/filesystem"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

func newRulesCommand(rootOpts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule set as YAML",
		Long: `Print the rules qgistidy applies: the built-in defaults merged with the
override file given by --config or $QGISTIDY_CONFIG.

The output is itself a valid rule file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, rootOpts)
			rules := loadRules(rootOpts.fs, configPath, logger)

			out, err := config.FromRuleSet(rules).Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Rule override file (YAML, or JSON with comments)")

	return cmd
}

// loadRules returns the built-in rules merged with the override file, if
// any. A missing or unreadable file is reported as a warning and the
// defaults are used.
func loadRules(fsys filesystem.FileSystemProvider, flagValue string, logger qgistidy.Logger) *qgistidy.RuleSet {
	defaults := qgistidy.DefaultRules()

	path := config.ResolvePath(flagValue)
	if path == "" {
		return defaults
	}

	cfg, err := config.LoadFrom(fsys, path)
	if err != nil {
		logger.Warn("could not read rules from %s: %v; using defaults", path, err)
		return defaults
	}

	logger.Verbose("loaded rules from %s (%s)", path, describeRules(cfg))
	return cfg.Apply(defaults)
}

func describeRules(cfg *config.RulesFile) string {
	return fmt.Sprintf("%d strip attribute(s), %d sort rule(s)", len(cfg.StripAttributes), len(cfg.SortRules))
}
