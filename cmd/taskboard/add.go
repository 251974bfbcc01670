package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var (
	addKind        string
	addID          int
	addName        string
	addDescription string
	addEpic        int
	addStart       string
	addDuration    time.Duration
	addStatus      string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task, epic or subtask",
	Long: `Add a new item. Subtasks need the id of their epic.
Start times use the form 2006-01-02T15:04:05 and must not overlap another scheduled item.`,
	Run: addItem,
}

func init() {
	addCmd.Flags().StringVarP(&addKind, "kind", "k", "task", "Item kind: task, epic or subtask")
	addCmd.Flags().IntVar(&addID, "id", 0, "Use this id instead of the next free one")
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Item name (required)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Item description")
	addCmd.Flags().IntVarP(&addEpic, "epic", "e", 0, "Epic id (subtasks only)")
	addCmd.Flags().StringVarP(&addStart, "start", "s", "", "Start time, e.g. 2025-01-01T09:00:00")
	addCmd.Flags().DurationVar(&addDuration, "duration", 0, "Planned duration, e.g. 1h30m")
	addCmd.Flags().StringVar(&addStatus, "status", "new", "Status: new, in-progress or done")
	if err := addCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("Failed to mark name flag as required: %v", err))
	}
}

func addItem(cmd *cobra.Command, args []string) {
	kind, err := parseKindFlag(addKind)
	if err != nil {
		fatal("%v", err)
	}
	status, err := parseStatusFlag(addStatus)
	if err != nil {
		fatal("%v", err)
	}
	start, err := parseStart(addStart)
	if err != nil {
		fatal("%v", err)
	}

	item := taskboard.Item{
		ID:          addID,
		Name:        addName,
		Description: addDescription,
		Status:      status,
		StartTime:   start,
		Duration:    addDuration,
	}

	m := mustOpenManager()

	var id int
	switch kind {
	case taskboard.KindTask:
		id, err = m.AddTask(taskboard.Task{Item: item})
	case taskboard.KindEpic:
		id, err = m.AddEpic(taskboard.Epic{Item: item})
	default:
		if addEpic == 0 {
			fatal("--epic is required for subtasks")
		}
		id, err = m.AddSubtask(taskboard.Subtask{Item: item, EpicID: addEpic})
	}
	if err != nil {
		fatal("Failed to add %s: %v", kind, err)
	}

	// Print confirmation
	fmt.Printf("✓ Added %s %d: %s\n", kind, id, addName)
	if addDescription != "" {
		fmt.Printf("  Description: %s\n", addDescription)
	}
	if start != nil {
		fmt.Printf("  Start: %s (%s)\n", start.Format(taskboard.TimeLayout), addDuration)
	}
	if kind == taskboard.KindSubtask {
		fmt.Printf("  Epic: %d\n", addEpic)
	}
}
