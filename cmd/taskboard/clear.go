package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var clearCmd = &cobra.Command{
	Use:       "clear <tasks|epics|subtasks|all>",
	Short:     "Delete every item of a kind",
	Long:      `Delete every item of a kind. Clearing epics clears their subtasks too.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tasks", "epics", "subtasks", "all"},
	Run:       clearItems,
}

func clearItems(cmd *cobra.Command, args []string) {
	m := mustOpenManager()

	var err error
	if args[0] == "all" {
		if err = m.DeleteAllTasks(); err == nil {
			err = m.DeleteAllEpics()
		}
	} else {
		kind, perr := parseKindFlag(args[0])
		if perr != nil {
			fatal("%v", perr)
		}
		switch kind {
		case taskboard.KindTask:
			err = m.DeleteAllTasks()
		case taskboard.KindEpic:
			err = m.DeleteAllEpics()
		default:
			err = m.DeleteAllSubtasks()
		}
	}
	if err != nil {
		fatal("Failed to clear %s: %v", args[0], err)
	}

	fmt.Printf("✓ Cleared %s\n", args[0])
}
