// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dblp-parser CLI.
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

// rootCmd is the base command for the dblp-parser CLI.
var rootCmd = &cobra.Command{
	Use:   "dblp-parser",
	Short: "Stream the DBLP XML dump into flat bibliographic records",
	Long: `dblp-parser reads the DBLP XML dump in a single streaming pass and turns
each publication element into a flat record. Records go to a JSON Lines
file, an in-memory table, or a SQLite database, optionally restricted to a
subset of fields or a single publication year.

The dump and its dblp.dtd are available from https://dblp.org/xml/.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dblp-parser.yaml or ~/.config/dblp-parser/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dblp-parser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dblp-parser"))
		}
	}

	viper.SetEnvPrefix("DBLP_PARSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
