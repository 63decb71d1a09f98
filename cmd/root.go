/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thermoscope/thermoscope/pkg/lcg"
	"github.com/thermoscope/thermoscope/pkg/thermoscope"
	"github.com/thermoscope/thermoscope/pkg/window"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "thermoscope",
	Short: "A real-time synthetic-temperature telemetry pipeline",
	Long: `Thermoscope runs a small concurrent telemetry pipeline: a synthetic
temperature sensor feeds a retunable moving-average filter whose output
scrolls across a bitmap panel, while stack and scheduler diagnostics
stream to the operator console. Type a number between 10 and 100
followed by Enter to retune the filter window at runtime.`,
	Run: thermoscope.Root(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.thermoscope.yaml)")
	rootCmd.PersistentFlags().Duration("sample-interval", 100*time.Millisecond, "Synthetic sensor sampling interval")
	rootCmd.PersistentFlags().Duration("render-interval", 100*time.Millisecond, "Graph render sleep between frames")
	rootCmd.PersistentFlags().Duration("report-interval", 5*time.Second, "Diagnostics reporting interval")
	rootCmd.PersistentFlags().Duration("input-poll-interval", 10*time.Millisecond, "Console input poll sleep when idle")
	rootCmd.PersistentFlags().Int("queue-size", 10, "Capacity of the raw and filtered channels")
	rootCmd.PersistentFlags().Int("filter-window", window.Default, "Startup filter window size")
	rootCmd.PersistentFlags().Uint32("seed", lcg.DefaultSeed, "Sensor generator seed")
	rootCmd.PersistentFlags().Int("stats-window", 50, "Signal statistics window length")
	rootCmd.PersistentFlags().String("mqtt-broker", "", "mqtt broker url (telemetry disabled when empty)")
	rootCmd.PersistentFlags().Int("mqtt-sample-interval", 10, "Publish every Nth reading to mqtt")
	rootCmd.PersistentFlags().String("ui", "plain", "Frontend: plain, tui or none")
	rootCmd.PersistentFlags().Duration("stall-timeout", 0, "Log when the filtered stream stays quiet this long (0 disables)")
	rootCmd.PersistentFlags().Bool("busy", false, "Run the synthetic CPU load task")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	viper.BindPFlags(rootCmd.PersistentFlags())
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

		// Search config in home directory with name ".thermoscope" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".thermoscope")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
