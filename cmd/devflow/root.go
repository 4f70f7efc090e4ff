package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/output"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	projectName string

	// Shared state injected into commands
	cfg     *config.Config
	cfgPath string
	cfgErr  error
	workDir string

	// debugSink is closed when the process exits.
	debugSink io.Closer = io.NopCloser(nil)
)

// Command group IDs for organizing help output
const (
	GroupCore     = "core"
	GroupWorkflow = "workflow"
	GroupUtility  = "utility"
	GroupConfig   = "config"
)

// skipGitCheck lists commands that work without git in PATH.
var skipGitCheck = map[string]bool{
	"completion": true,
	"__complete": true,
	"help":       true,
	"doctor":     true,
	"init":       true,
	"show":       true,
	"hooks":      true,
	"history":    true,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devflow",
	Short: "Developer workflow automation for git-based projects",
	Long: `devflow automates the daily loop of a developer working on a project:
inspecting repository state, managing changeset branches and running
toolchain operations (install, build, test, run) in order.

Projects are configured in ~/.config/devflow/config.toml.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed now, so the logger can honour -v and -q
		logger := log.New(os.Stderr, verbose, quiet)
		sink, closer, err := log.OpenSink()
		if err != nil {
			logger.Warnf("debug log disabled: %v\n", err)
		} else if sink != nil {
			logger = logger.WithSink(sink)
			debugSink = closer
		}
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))

		if skipGitCheck[cmd.Name()] {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	var err error
	cfgPath, err = config.Path()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devflow: %v\n", err)
		os.Exit(1)
	}

	// A broken config is reported by the commands that need it, so doctor
	// and config init stay usable.
	loadedCfg, err := config.Load(osFs, cfgPath)
	if err != nil {
		cfgErr = err
		loadedCfg = config.Default()
	}
	cfg = &loadedCfg

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devflow: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	err = rootCmd.Execute()
	debugSink.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !isSilentError(err) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'devflow -h' for help")
		}
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "Project to operate on")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	_ = rootCmd.RegisterFlagCompletionFunc("project", completeProjects)

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupWorkflow, Title: "Workflow Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newChangesetsCmd())
	rootCmd.AddCommand(newRunCmd())

	// Workflow commands
	rootCmd.AddCommand(newFreshCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newExecCmd())

	// Utility commands
	rootCmd.AddCommand(newHistoryCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
