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
	"log/slog"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/notargets/lb2dgeom/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lb2dgeom",
	Short: "Boundary geometry for D2Q9 lattice Boltzmann solvers",
	Long: `Builds signed distance fields, solid masks and Bouzidi link fractions
from analytic shapes on uniform Cartesian grids.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if err = setupLogger(viper.GetString("logLevel")); err != nil {
			return
		}
		profiler, err = startProfile(viper.GetString("profile"), viper.GetString("outputDir"))
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
	SilenceUsage: true,
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

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lb2dgeom.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "write a profile while running: cpu, mem, block, mutex or trace")
	rootCmd.PersistentFlags().IntP("parallel", "p", 0, "number of goroutines for grid passes, 0 uses every CPU")
	rootCmd.PersistentFlags().String("logLevel", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("outputDir", ".", "directory for demo output and profiles")
	for _, name := range []string{"profile", "parallel", "logLevel", "outputDir"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
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
		// Search config in home directory with name ".lb2dgeom" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lb2dgeom")
	}

	viper.SetEnvPrefix("LB2DGEOM")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	utils.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func startProfile(kind, dir string) (p interface{ Stop() }, err error) {
	var mode func(*profile.Profile)
	switch strings.ToLower(kind) {
	case "":
		return
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "block":
		mode = profile.BlockProfile
	case "mutex":
		mode = profile.MutexProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile %q", kind)
	}
	return profile.Start(mode, profile.ProfilePath(dir), profile.NoShutdownHook), nil
}
