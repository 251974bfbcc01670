package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Complete a task or subtask",
	Long:  `Mark a task or subtask as done. An epic is done once all of its subtasks are.`,
	Args:  cobra.ExactArgs(1),
	Run:   completeItem,
}

func completeItem(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fatal("%v", err)
	}

	m := mustOpenManager()

	// Check if item exists
	item, err := findItem(m, id)
	if err != nil {
		fatal("%v", err)
	}

	// Check if already completed
	if item.Base().Status == taskboard.StatusDone {
		fmt.Printf("%s %d is already done.\n", item.Kind(), id)
		return
	}

	switch v := item.(type) {
	case *taskboard.Epic:
		fatal("Epic %d follows its subtasks; complete those instead", id)
	case *taskboard.Task:
		v.Status = taskboard.StatusDone
		err = m.EditTask(*v)
	case *taskboard.Subtask:
		v.Status = taskboard.StatusDone
		err = m.EditSubtask(*v)
	}
	if err != nil {
		fatal("Failed to complete %d: %v", id, err)
	}

	fmt.Printf("✓ Completed: %d\n", id)
	fmt.Printf("  %s\n", item.Base().Name)

	// Report the epic roll-up
	if st, ok := item.(*taskboard.Subtask); ok {
		epic, err := findItem(m, st.EpicID)
		if err != nil {
			return
		}
		if epic.Base().Status == taskboard.StatusDone {
			fmt.Printf("  ✓ Epic also completed: %d (%s)\n", st.EpicID, epic.Base().Name)
		} else {
			fmt.Printf("  Epic %d is now %s\n", st.EpicID, epic.Base().Status)
		}
	}
}
