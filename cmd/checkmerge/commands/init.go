package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"tlog.app/go/errors"

	"github.com/checkmerge/checkmerge/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a checkmerge configuration file interactively",
	Long: `Guides you through setting up checkmerge configuration step by step.
Creates a config file with output, package loading, and cache settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.Default()
	buildFlags := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory for report artifacts").
				Placeholder(".").
				Value(&cfg.Output),
			huh.NewInput().
				Title("Extra build flags (optional, space separated)").
				Placeholder("-tags=integration").
				Value(&buildFlags),
			huh.NewConfirm().
				Title("Analyze test files?").
				Value(&cfg.Tests),
			huh.NewConfirm().
				Title("Analyze generated files?").
				Value(&cfg.Generated),
		),
	)
	if err := form.Run(); err != nil {
		return errors.Wrap(err, "interactive prompt failed")
	}
	if buildFlags != "" {
		cfg.BuildFlags = strings.Fields(buildFlags)
	}

	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable the report artifact cache?").
				Description("Unchanged packages reuse the previous artifact").
				Value(&cfg.Cache.Enabled),
		),
	)
	if err := form.Run(); err != nil {
		return errors.Wrap(err, "interactive prompt failed")
	}

	if cfg.Cache.Enabled {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cache directory").
					Placeholder(cfg.Cache.Dir).
					Value(&cfg.Cache.Dir),
			),
		)
		if err := form.Run(); err != nil {
			return errors.Wrap(err, "interactive prompt failed")
		}
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", path)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.Wrap(err, "interactive prompt failed")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	fmt.Println("\n=== Configuration Preview ===")
	fmt.Printf("Config path: %s\n", path)
	fmt.Printf("Output: %s\n", cfg.Output)
	if len(cfg.BuildFlags) > 0 {
		fmt.Printf("Build flags: %s\n", strings.Join(cfg.BuildFlags, " "))
	}
	fmt.Printf("Tests: %v\n", cfg.Tests)
	fmt.Printf("Generated: %v\n", cfg.Generated)
	if cfg.Cache.Enabled {
		fmt.Printf("Cache: enabled (%s)\n", cfg.Cache.Dir)
	} else {
		fmt.Println("Cache: disabled")
	}
	fmt.Println("=============================")

	if err := cfg.Save(path); err != nil {
		return errors.Wrap(err, "save config")
	}
	fmt.Printf("Configuration saved to: %s\n", path)

	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
