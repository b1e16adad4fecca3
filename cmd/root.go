/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "korolev",
	Short: "Korolev is a sequencer node transaction pool service",
	Long:  `Korolev runs the transaction intake and sequencing core of a sequencer node`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to settings.yaml file(default is $HOME/settings.yaml)")

	rootCmd.PersistentFlags().StringP("datadir", "d", viper.GetString("pool.DataDir"), "Journal storage directory, empty keeps the pool fully in memory")
	rootCmd.PersistentFlags().IntP("capacity", "c", viper.GetInt("pool.Capacity"), "Maximum pending plus queued transactions")

	if err := viper.BindPFlag("Pool.DataDir", rootCmd.PersistentFlags().Lookup("datadir")); err != nil {
		println(err.Error())
	}
	if err := viper.BindEnv("Pool.DataDir", "KRLV_DATADIR"); err != nil {
		println(err.Error())
	}
	if err := viper.BindPFlag("Pool.Capacity", rootCmd.PersistentFlags().Lookup("capacity")); err != nil {
		println(err.Error())
	}
	if err := viper.BindEnv("Pool.Capacity", "KRLV_CAPACITY"); err != nil {
		println(err.Error())
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name "settings.yaml".
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName("settings")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
