package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one item",
	Args:  cobra.ExactArgs(1),
	Run:   getItem,
}

func getItem(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fatal("%v", err)
	}

	m := mustOpenManager()
	item, err := findItem(m, id)
	if err != nil {
		fatal("%v", err)
	}

	displayItem(item, 0)

	switch v := item.(type) {
	case *taskboard.Epic:
		subtasks, err := m.SubtasksOfEpic(v.ID)
		if err != nil {
			fatal("%v", err)
		}
		for _, st := range subtasks {
			displayItem(st, 1)
		}
	case *taskboard.Subtask:
		fmt.Printf("   Epic: %d\n", v.EpicID)
	}
}
