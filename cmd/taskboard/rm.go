package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var rmSubtasksOnly bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an item",
	Long:  `Delete an item. Deleting an epic deletes its subtasks too; --subtasks keeps the epic.`,
	Args:  cobra.ExactArgs(1),
	Run:   removeItem,
}

func init() {
	rmCmd.Flags().BoolVar(&rmSubtasksOnly, "subtasks", false, "Only delete the subtasks of the epic")
}

func removeItem(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fatal("%v", err)
	}

	m := mustOpenManager()
	item, err := findItem(m, id)
	if err != nil {
		fatal("%v", err)
	}

	switch item.(type) {
	case *taskboard.Task:
		err = m.DeleteTask(id)
	case *taskboard.Epic:
		if rmSubtasksOnly {
			err = m.DeleteSubtasksOfEpic(id)
		} else {
			err = m.DeleteEpic(id)
		}
	case *taskboard.Subtask:
		err = m.DeleteSubtask(id)
	}
	if err != nil {
		fatal("Failed to delete %d: %v", id, err)
	}

	if rmSubtasksOnly {
		fmt.Printf("✓ Deleted the subtasks of epic %d\n", id)
		return
	}
	fmt.Printf("✓ Deleted %s %d: %s\n", item.Kind(), id, item.Base().Name)
}
