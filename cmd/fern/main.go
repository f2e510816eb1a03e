package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/config"
)

var (
	fixturePath      string
	mapperConfigPath string
	baseURL          string
	jsonOutput       bool

	env *environment
)

var rootCmd = &cobra.Command{
	Use:          "fern <command>",
	Short:        "Map content nodes onto typed Go models",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("fixture") {
			cfg.FixturePath = fixturePath
			cfg.DatabaseURL = ""
		}
		if flags.Changed("mapper-config") {
			cfg.MapperConfigPath = mapperConfigPath
		}
		if flags.Changed("base-url") {
			cfg.BaseURL = baseURL
		}

		env, err = newEnvironment(cmd.Context(), cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env != nil {
			env.Close()
			env = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "YAML node fixture to map from (overrides DB_URL)")
	rootCmd.PersistentFlags().StringVar(&mapperConfigPath, "mapper-config", "", "mapper configuration file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "site base URL used to resolve node addresses")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
