package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Flags for the root command.
var (
	flagRelease    string
	flagBranch     string
	flagTagPrefix  string
	flagDeployRepo string
	flagConfig     string
	flagRemotePush bool
	flagDebug      bool
	flagVerbosity  string
)

// rootCmd is the top-level command for mvndeploy.
var rootCmd = &cobra.Command{
	Use:   "mvndeploy [revision...]",
	Short: "Deploy Maven project revisions to a git artifact-history branch",
	Long: `mvndeploy builds one or more revisions of the Maven project in the current
working directory and publishes their artifacts to a persistent
artifact-history branch (gh-pages by default). All revisions of a run
accumulate into a single commit on that branch.

With no revisions and no --release, the current HEAD is deployed.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          deployRunE,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagRelease, "release", "", "tag HEAD with this version after a successful build and push the tag")
	rootCmd.Flags().StringVarP(&flagBranch, "branch", "b", "", "artifact-history branch name (default: gh-pages)")
	rootCmd.Flags().StringVar(&flagTagPrefix, "tag-prefix", "", "tag namespace prefix version labels live under")
	rootCmd.Flags().StringVar(&flagDeployRepo, "deploy-repo", "", "path of the repository hosting the artifact branch (default: the project repository)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.Flags().BoolVar(&flagRemotePush, "remote-push", true, "push the artifact branch onward to the configured remote")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "retain the workspace directory for inspection")
	rootCmd.Flags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
}

// Execute runs the root command, mapping errors to exit codes: 1 for
// operational failures, 2 for operator interruption.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "mvndeploy: operation interrupted")
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "mvndeploy: error: %v\n", err)
	os.Exit(1)
}
