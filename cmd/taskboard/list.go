package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var (
	statusFilter string
	kindFilter   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items",
	Long:  `List tasks, then epics with their subtasks, optionally filtered by status or kind.`,
	Run:   listItems,
}

func init() {
	listCmd.Flags().StringVar(&statusFilter, "status", "", "Only show items with this status")
	listCmd.Flags().StringVar(&kindFilter, "kind", "", "Only show this kind: task, epic or subtask")
}

func listItems(cmd *cobra.Command, args []string) {
	var status taskboard.Status
	if statusFilter != "" {
		s, err := parseStatusFlag(statusFilter)
		if err != nil {
			fatal("%v", err)
		}
		status = s
	}
	var kind taskboard.Kind
	if kindFilter != "" {
		k, err := parseKindFlag(kindFilter)
		if err != nil {
			fatal("%v", err)
		}
		kind = k
	}

	m := mustOpenManager()

	matches := func(e taskboard.Entity) bool {
		return status == "" || e.Base().Status == status
	}

	shown := 0

	if kind == "" || kind == taskboard.KindTask {
		for _, t := range m.Tasks() {
			if matches(t) {
				displayItem(t, 0)
				shown++
			}
		}
	}

	if kind == taskboard.KindSubtask {
		for _, st := range m.Subtasks() {
			if matches(st) {
				displayItem(st, 0)
				shown++
			}
		}
	}

	if kind == "" || kind == taskboard.KindEpic {
		for _, e := range m.Epics() {
			subtasks, _ := m.SubtasksOfEpic(e.ID)

			var children []*taskboard.Subtask
			if kind == "" {
				for _, st := range subtasks {
					if matches(st) {
						children = append(children, st)
					}
				}
			}
			if !matches(e) && len(children) == 0 {
				continue
			}

			displayItem(e, 0)
			shown++
			for _, st := range children {
				displayItem(st, 1)
				shown++
			}
		}
	}

	if shown == 0 {
		fmt.Println("No items found.")
	}
}
