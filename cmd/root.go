package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/meysamhadeli/scriptbox/config"
	"github.com/meysamhadeli/scriptbox/logging"
	"github.com/meysamhadeli/scriptbox/menu"
	"github.com/meysamhadeli/scriptbox/script_index"
	"github.com/meysamhadeli/scriptbox/script_index/contracts"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// RootDependencies holds everything the interactive loop is built from.
type RootDependencies struct {
	Config   *config.Config
	Fs       afero.Fs
	Index    contracts.IScriptIndex
	Logger   *logrus.Entry
	Terminal bool
}

var rootCmd = &cobra.Command{
	Use:   "scriptbox",
	Short: "Organize script files into numbered directories from an interactive menu.",
	Long: `scriptbox keeps text scripts in numbered directories (scripts1, scripts2, ...).
From its main menu you can create a script by typing it line by line, list every
directory with its scripts, view a script with line numbers, and delete a script
after confirmation. Scripts are stored as typed and never executed.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfig.Version)
			return nil
		}

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return runMenu(rootDependencies, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd, cwd)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("scriptbox", cfg.LogLevel, cmd.ErrOrStderr())
	fs := afero.NewOsFs()

	return &RootDependencies{
		Config:   cfg,
		Fs:       fs,
		Index:    script_index.NewScriptIndex(fs, cfg.IndexConfig(), logger.WithField("component", "index")),
		Logger:   logger,
		Terminal: isTerminal(cmd.OutOrStdout()),
	}, nil
}

// runMenu picks the full or degraded loop once, based on whether the base path can be listed.
func runMenu(deps *RootDependencies, in io.Reader, out io.Writer) error {
	if !deps.Terminal {
		pterm.DisableColor()
	}

	opts := menu.Options{
		Sentinel:         deps.Config.Sentinel,
		Theme:            deps.Config.Theme,
		Highlight:        deps.Config.Highlight && deps.Terminal,
		ClearScreen:      deps.Config.ClearScreen && deps.Terminal,
		ConfirmOverwrite: deps.Config.ConfirmOverwrite,
		Lint:             deps.Config.Lint,
	}
	menuLogger := deps.Logger.WithField("component", "menu")

	var reason error
	if deps.Config.Degraded {
		reason = fmt.Errorf("degraded mode requested by configuration")
	} else if err := deps.Index.Probe(); err != nil {
		reason = err
		deps.Logger.WithError(err).Warn("directory listing unavailable, starting degraded mode")
	}

	if reason != nil {
		return menu.NewDegradedMenu(deps.Index, deps.Fs, in, out, opts, reason, menuLogger).Run()
	}

	deps.Logger.WithField("base_path", deps.Index.BasePath()).Debug("starting main menu")
	return menu.NewMenu(deps.Index, deps.Fs, in, out, opts, menuLogger).Run()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
