// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the batch-extract CLI. Run without a
// subcommand it starts an interactive session; the subcommands run a single
// batch, verification only, or a folder scan.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// configName is the config file base name searched in . and
// ~/.config/batch-extract/.
const configName = "batch-extract"

// rootCmd is the base command for the batch-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "batch-extract",
	Short: "Extract every archive in a folder into its own output folder",
	Long: `batch-extract scans a folder for zip, rar and 7z archives, including
multi-part sets (.7z.001, .part01.rar, .r00, .z01), verifies each one, and
extracts the valid archives into a subfolder of the destination. Password
protected archives prompt for a password with a bounded number of attempts.

Run without a subcommand for an interactive session that asks for the
source and destination folders and can process several batches in a row.`,
	SilenceUsage: true,
	RunE:         runSession,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./"+configName+".yaml or ~/.config/"+configName+"/"+configName+".yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "write debug logs to stderr")
	rootCmd.PersistentFlags().String("passwords-dir", "", "folder with passwords.yaml or password files named after the archives they unlock")
	rootCmd.PersistentFlags().String("scratch-dir", "", "where the interactive session creates its scratch folders (default: next to the program)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("passwords_dir", rootCmd.PersistentFlags().Lookup("passwords-dir"))
	_ = viper.BindPFlag("scratch_dir", rootCmd.PersistentFlags().Lookup("scratch-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	viper.SetEnvPrefix("BATCH_EXTRACT")
	viper.AutomaticEnv()

	viper.SetDefault("max_password_attempts", 3)
	viper.SetDefault("report_format", "text")
	viper.SetDefault("progress", true)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
