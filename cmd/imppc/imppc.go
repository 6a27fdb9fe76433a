package main

import (
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/impp/internal/config"
	"github.com/you-not-fish/impp/internal/logging"
)

// globals holds the persistent flags shared by all commands.
type globals struct {
	logToStderr bool
	verbose     int
	configPath  string
	color       string
}

// newImppcCmd creates the root command.
func newImppcCmd() *cobra.Command {
	g := new(globals)
	cmd := &cobra.Command{
		Use:   "imppc",
		Short: "imppc checks programs written in the Imperative language",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogging(g.logToStderr, g.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
	}

	cmd.PersistentFlags().BoolVar(&g.logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(
		&g.verbose, "verbose", "v", 0, "Enable verbose logging (e.g., v=3); anything >3 is very verbose")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "",
		"Configuration file (default: "+config.FileName+" in the working directory, if present)")
	cmd.PersistentFlags().StringVar(&g.color, "color", "", "Colorize output: auto, always or never")

	cmd.AddCommand(newCompileCmd(g))
	cmd.AddCommand(newTestCmd(g))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the configuration file and applies the persistent
// flags over it.
func (g *globals) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if g.configPath != "" {
		cfg, err = config.Load(g.configPath)
	} else {
		cfg, err = config.Find("")
	}
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = g.color
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	glog.V(5).Infof("configuration: %+v", *cfg)
	return cfg, nil
}
