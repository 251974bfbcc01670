package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prioritizedCmd = &cobra.Command{
	Use:   "prioritized",
	Short: "List scheduled tasks and subtasks by start time",
	Run:   listPrioritized,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the earliest scheduled item that is not done",
	Run:   showNext,
}

func listPrioritized(cmd *cobra.Command, args []string) {
	m := mustOpenManager()

	items := m.Prioritized()
	if len(items) == 0 {
		fmt.Println("Nothing scheduled.")
		return
	}

	for _, item := range items {
		displayItem(item, 0)
	}
}

func showNext(cmd *cobra.Command, args []string) {
	m := mustOpenManager()

	item := m.NextUp()
	if item == nil {
		fmt.Println("✅ Nothing left to do!")
		return
	}

	fmt.Println("📋 Next up:")
	displayItem(item, 1)
}
