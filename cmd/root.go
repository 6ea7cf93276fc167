// Package cmd is for command line interactions with the junkread application
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xbh0403/CSE-282-Project/config"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)

	// settingsFile is an optional YAML or JSON settings file
	settingsFile string

	// profileMode is the kind of profile to write, if any
	profileMode string

	// profiler is the running profile, stopped after the command
	profiler interface{ Stop() }
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "junkread",
	Short: "Recover junk V(D)J reads and find the epitopes that cover them",
	Long: `Recover "junk" sequencing reads that span a V/J gene junction and pick
the epitopes best supported by them.

Reads are assigned the V and J gene whose overlaps with the read's ends
agree best. Reads scoring above a threshold are recovered, and the k
epitopes covering the most recovered reads are selected exactly and greedily.`,
	Version:           "0.1.0",
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		stderr.Fatalf("%v", err)
	}
}

// setup reads the settings file and environment and starts the profiler
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(viper.GetViper(), settingsFile); err != nil {
		return err
	}

	var mode func(*profile.Profile)
	switch strings.ToLower(profileMode) {
	case "":
		return nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "block":
		mode = profile.BlockProfile
	default:
		return fmt.Errorf("unknown profile %q, expected cpu, mem or block", profileMode)
	}
	profiler = profile.Start(mode, profile.ProfilePath("."), profile.Quiet)
	return nil
}

// settings returns the command's Config or logs why it couldn't be made
func settings() *config.Config {
	c, err := config.New()
	if err != nil {
		stderr.Fatal(err)
	}
	return c
}

// set flags
func init() {
	config.SetDefaults(viper.GetViper())

	RootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "settings file <YAML|JSON>")
	RootCmd.PersistentFlags().IntP("workers", "w", 0, "number of parallel workers (0 for one per core)")
	RootCmd.PersistentFlags().Bool("progress", false, "draw progress bars on stderr")
	RootCmd.PersistentFlags().StringVar(&profileMode, "profile", "", "write a cpu, mem or block profile to the working directory")

	must(viper.BindPFlag("workers", RootCmd.PersistentFlags().Lookup("workers")))
	must(viper.BindPFlag("progress", RootCmd.PersistentFlags().Lookup("progress")))
}

// must fails on flag wiring mistakes
func must(err error) {
	if err != nil {
		stderr.Fatal(err)
	}
}
