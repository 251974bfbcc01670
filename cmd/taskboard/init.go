package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Run:   writeConfig,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func writeConfig(cmd *cobra.Command, args []string) {
	if _, err := os.Stat(configFlag); err == nil && !initForce {
		fmt.Printf("Config %s already exists, use --force to overwrite.\n", configFlag)
		return
	}

	if err := config.WriteDefault(configFlag); err != nil {
		fatal("Failed to write config: %v", err)
	}
	fmt.Printf("✓ Wrote %s\n", configFlag)
}
