package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/juparave/smartdeploy/internal/app"
	"github.com/juparave/smartdeploy/internal/config"
	apperrors "github.com/juparave/smartdeploy/internal/errors"
	"github.com/juparave/smartdeploy/internal/ui"
	"github.com/juparave/smartdeploy/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	cfgFile string
	message string
	remote  string
	dryRun  bool
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deploy [dir]",
		Short: "Smart Deploy - stage, describe, commit and push in one step",
		Long: `Smart Deploy inspects the pending changes of a Git working tree, writes a
commit message from the changed paths, then stages, commits and pushes.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ~/.config/smartdeploy/config.yaml)")
	rootCmd.Flags().StringVarP(&message, "message", "m", "", "Use this commit message instead of generating one")
	rootCmd.Flags().StringVar(&remote, "remote", "", "Remote to publish to (default: origin)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the generated message without staging, committing or pushing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var dir string
	if len(args) > 0 {
		dir = args[0]
	}
	cfg.ProjectDir, err = util.ResolveDir(dir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	// Override config with CLI flags
	if remote != "" {
		cfg.Remote = remote
	}
	cfg.Override = message
	cfg.DryRun = dryRun
	cfg.Verbose = verbose

	logger := newLogger(cfg.Verbose)
	dep, err := app.NewRunner(cfg, logger, cmd.OutOrStdout()).Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"files":    dep.FileCount(),
		"branch":   dep.Branch,
		"remote":   dep.RemoteURL,
		"upstream": dep.SetUpstream,
		"dry_run":  dep.DryRun,
	}).Debug("Deployment finished")
	return nil
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// report prints err with its remediation hint
func report(w io.Writer, err error) {
	out := ui.New(w)

	var de *apperrors.DeployError
	if !errors.As(err, &de) {
		out.Error(err.Error())
		return
	}

	out.Error(de.Message)
	if de.Err != nil {
		out.Muted("     " + de.Err.Error())
	}
	if hint := apperrors.HintOf(err); hint != "" {
		out.Error(hint)
	}
}
