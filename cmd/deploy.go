package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mvntools/mvndeploy/internal/config"
	"github.com/mvntools/mvndeploy/internal/deploy"
	"github.com/mvntools/mvndeploy/internal/execx"
	"github.com/mvntools/mvndeploy/internal/git"
	"github.com/mvntools/mvndeploy/internal/maven"
	"github.com/mvntools/mvndeploy/internal/merger"
	"github.com/mvntools/mvndeploy/internal/workspace"
)

// configFileNames lists the files searched for configuration in order.
var configFileNames = []string{
	".mvndeploy.yml",
	"mvndeploy.yml",
}

func deployRunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. Validate input.
	revisions, err := resolveRevisions(cmd, args)
	if err != nil {
		return err
	}

	// 2. Configure logging.
	logger, err := newLogger(flagVerbosity)
	if err != nil {
		return err
	}

	// 3. Open the project repository.
	runner := &execx.Local{}
	project, err := git.Open(".", runner)
	if err != nil {
		return fmt.Errorf("opening project repository: %w", err)
	}

	// 4. Load configuration.
	cfg, err := loadConfig(cmd, project.WorkDir())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// 5. Open the deployment repository.
	deployStore := git.Store(project)
	if *cfg.DeployRepo != "" {
		ds, err := git.Open(*cfg.DeployRepo, runner)
		if err != nil {
			return fmt.Errorf("opening deployment repository: %w", err)
		}
		deployStore = ds
	}

	// 6. Acquire the workspace; released on every exit path unless debug.
	ws, err := workspace.Acquire(workspace.Options{
		Debug:     flagDebug,
		RetainDir: *cfg.DebugDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := ws.Release(); err != nil {
			logger.Warn().Err(err).Msg("releasing workspace")
		}
	}()
	if ws.Retained() {
		logger.Info().Str("dir", ws.Root()).Msg("retaining workspace")
	}

	// 7. Run the deployment.
	m := merger.New(deployStore, runner, *cfg.Remote)
	coordinator := deploy.New(project, maven.NewCLI(runner), m, logger, deploy.Options{
		Revisions:  revisions,
		Release:    flagRelease,
		Branch:     *cfg.Branch,
		TagPrefix:  *cfg.TagPrefix,
		Remote:     *cfg.Remote,
		RemotePush: *cfg.RemotePush,
	})
	if err := coordinator.Run(ctx, ws); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Deployment was successful.")
	return nil
}

// resolveRevisions validates the positional arguments and applies the HEAD
// default when neither revisions nor a release are given.
func resolveRevisions(cmd *cobra.Command, args []string) ([]string, error) {
	for _, rev := range args {
		if strings.TrimSpace(rev) == "" {
			return nil, fmt.Errorf("revision must not be empty")
		}
	}
	if cmd.Flags().Changed("release") && flagRelease == "" {
		return nil, fmt.Errorf("--release requires a version")
	}
	if len(args) == 0 && flagRelease == "" {
		return []string{"HEAD"}, nil
	}
	return args, nil
}

// loadConfig loads configuration from a file or defaults and applies flag
// overrides on top.
func loadConfig(cmd *cobra.Command, workDir string) (*config.Config, error) {
	builder := config.NewBuilder()

	configPath := flagConfig
	if configPath == "" {
		configPath = findConfigFile(workDir)
	}

	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(fileCfg)
	}

	return builder.Add(flagOverrides(cmd)).Build()
}

// findConfigFile searches for a config file in the working directory.
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// flagOverrides builds a config layer from explicitly set flags.
func flagOverrides(cmd *cobra.Command) *config.Config {
	override := &config.Config{}
	if cmd.Flags().Changed("branch") {
		override.Branch = &flagBranch
	}
	if cmd.Flags().Changed("tag-prefix") {
		override.TagPrefix = &flagTagPrefix
	}
	if cmd.Flags().Changed("deploy-repo") {
		override.DeployRepo = &flagDeployRepo
	}
	if cmd.Flags().Changed("remote-push") {
		override.RemotePush = &flagRemotePush
	}
	return override
}

func newLogger(verbosity string) (zerolog.Logger, error) {
	var level zerolog.Level
	switch verbosity {
	case "quiet":
		level = zerolog.Disabled
	case "info":
		level = zerolog.InfoLevel
	case "debug":
		level = zerolog.DebugLevel
	default:
		return zerolog.Nop(), fmt.Errorf("unknown verbosity %q", verbosity)
	}

	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(w).With().Timestamp().Logger().Level(level), nil
}
