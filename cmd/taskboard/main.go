package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
	"github.com/fmizzell/taskboard/config"
)

var (
	configFlag string
	fileFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Track tasks, epics and subtasks",
	Long: `taskboard keeps tasks, epics and their subtasks in a local file.
Epic status and schedule follow their subtasks, and scheduled items may not overlap.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "taskboard.yaml", "Config file")
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Data file (overrides storage.file)")

	rootCmd.AddCommand(addCmd, editCmd, completeCmd, getCmd, listCmd, rmCmd, clearCmd,
		prioritizedCmd, nextCmd, serveCmd, demoCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the --file flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if fileFlag != "" {
		cfg.Storage.File = fileFlag
	}
	return cfg, nil
}

// openManager loads the configured data file. An empty storage.file keeps
// everything in memory.
func openManager(cfg *config.Config) (*taskboard.Manager, error) {
	if cfg.Storage.File == "" {
		return taskboard.NewManager(), nil
	}
	return taskboard.NewManagerWithPersistence(cfg.Storage.File)
}

func mustOpenManager() *taskboard.Manager {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	m, err := openManager(cfg)
	if err != nil {
		fatal("Failed to load taskboard: %v", err)
	}
	return m
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
