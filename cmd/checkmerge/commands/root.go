package commands

import (
	"github.com/spf13/cobra"
	"tlog.app/go/tlog"
)

var (
	configPath string
	verbosity  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "checkmerge",
	Short: "checkmerge - memory dependence reports for Go packages",
	Long: `checkmerge renders one report artifact per analyzed package, recording
for every function which prior memory accesses each instruction may
depend on and how each dependence classifies (RAW, WAR, ...).

Commands:
  analyze     Analyze packages and write report artifacts
  init        Create a configuration file interactively

Use "checkmerge [command] --help" for more information about a command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		tlog.SetVerbosity(verbosity)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	RootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "", "Verbose logging topics (comma separated)")
}
