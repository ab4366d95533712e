/*
Copyright (c) Dataveil Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataveil/dataveil/src/config"
	"github.com/dataveil/dataveil/src/utils"
)

var (
	cfgFile string
	logDir  string
)

var rootCmd = &cobra.Command{
	Use:   "dataveil",
	Short: "A CLI tool to reversibly mask sensitive identifier values in tabular datasets (CSV, XLSX)",
	Long: `A CLI tool to reversibly mask sensitive identifier values in tabular datasets.
Original cell values are replaced with deterministic tokens while a bidirectional mapping document
(the sole means of restoration - keep it safe!) is maintained alongside. Columns likely to hold
sensitive data can be suggested automatically via name, content-pattern, and cardinality heuristics.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := config.ValidateLogLevel()
		if err != nil {
			utils.ErrExit("%v", err)
		}
		InitLogging(logDir, cmd.Use == "version", cmd.Use)
	},

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.dataveil.yaml)")

	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", ".",
		"directory under which the logs/ folder is created")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", config.INFO,
		"log level: trace, debug, info, warn, error, fatal, panic")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".dataveil" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dataveil")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
