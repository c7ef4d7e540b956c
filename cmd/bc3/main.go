package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/awncorp/api-basecamp/cmd/bc3/commands"
	"github.com/awncorp/api-basecamp/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bc3",
	Short: "Basecamp API CLI",
	Long: `A command-line interface for the Basecamp API.

Resources are addressed by path segments, so any endpoint is reachable
without a dedicated subcommand:

  bc3 get projects
  bc3 get projects 605816632 todos
  bc3 post projects --data '{"name":"Launch"}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.bc3/config.yml)")
	rootCmd.PersistentFlags().StringP("account", "a", "", "Basecamp account id")
	rootCmd.PersistentFlags().StringP("username", "u", "", "account username")
	rootCmd.PersistentFlags().StringP("password", "p", "", "account password")
	rootCmd.PersistentFlags().Int("api-version", constants.DefaultVersion, "API version")
	rootCmd.PersistentFlags().String("base-url", constants.DefaultBaseURL, "API base URL")
	rootCmd.PersistentFlags().Int("retries", constants.DefaultRetries, "retry attempts after the first")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultTimeout, "per-request timeout")
	rootCmd.PersistentFlags().Bool("fatal", false, "treat exhausted-retry HTTP failures as errors")
	rootCmd.PersistentFlags().Bool("debug", false, "log requests and responses to stderr")
	rootCmd.PersistentFlags().String("output", "json", "output format (table, json, yaml)")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account"))
	_ = viper.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag("api_version", rootCmd.PersistentFlags().Lookup("api-version"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("retries", rootCmd.PersistentFlags().Lookup("retries"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("fatal", rootCmd.PersistentFlags().Lookup("fatal"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewResourcesCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewPostCommand())
	rootCmd.AddCommand(commands.NewPutCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewRequestCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Create config directory if it doesn't exist
		configDir := filepath.Join(home, ".bc3")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.bc3/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("BC3")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
