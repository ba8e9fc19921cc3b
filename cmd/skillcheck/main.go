// Package main is the entry point for the skill check tracker CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Storage flags
	storeKind      string
	dbPath         string
	redisAddr      string
	redisPassword  string
	redisKeyPrefix string

	verbose bool

	// current is the wired application for the running command
	current *app
)

var rootCmd = &cobra.Command{
	Use:   "skillcheck",
	Short: "D&D skill check session tracker",
	Long: `skillcheck keeps a roster of players and skill check events, builds check
sessions from a players x events selection, and resolves each check with a d20.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		configureLogging()

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if current == nil {
			return nil
		}
		return current.Close()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", storeSQLite, "durable store: sqlite, redis or memory")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "skillcheck.db", "sqlite database file")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address")
	rootCmd.PersistentFlags().StringVar(&redisPassword, "redis-password", "", "redis password")
	rootCmd.PersistentFlags().StringVar(&redisKeyPrefix, "redis-key-prefix", "skillcheck:", "prefix for redis keys")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every operation")

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(dataCmd)

	// Item actions on the current session
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(rollAllCmd)
	rootCmd.AddCommand(customCmd)
	rootCmd.AddCommand(bonusCmd)
	rootCmd.AddCommand(advantageCmd)
	rootCmd.AddCommand(disadvantageCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(resetAllCmd)
}

// configureLogging keeps command output clean unless --verbose is set
func configureLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
