// Package cli wires the ctxpress commands: group-conversation analysis,
// single-document compression, token estimation, batch processing and
// cache/config management.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ctxpress",
	Short: "ctxpress - Smart context reduction for AI agents",
	Long: `ctxpress reduces the size of text handed to an AI agent by extracting
only the parts likely to matter.

For single documents it strips comments, summarizes, or pulls the lines
near a query. For multi-party conversation logs it goes further: it
segments messages, maps who mentioned whom, tallies votes, extracts
self-referential claims, and checks those claims against the record,
flagging contradictions.

The analysis is textual. ctxpress reports what the conversation says
about itself; it does not judge what is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for ctxpress.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ctxpress v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ctxpress/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.ctxpress")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CTXPRESS_*
	viper.SetEnvPrefix("CTXPRESS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
