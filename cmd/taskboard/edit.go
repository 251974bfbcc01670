package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var (
	editName        string
	editDescription string
	editEpic        int
	editStart       string
	editDuration    time.Duration
	editStatus      string
	editUnschedule  bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an existing item",
	Long: `Change the fields given as flags and keep the rest.
Epics only take a new name or description: their status and schedule follow their subtasks.`,
	Args: cobra.ExactArgs(1),
	Run:  editItem,
}

func init() {
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "New name")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().IntVarP(&editEpic, "epic", "e", 0, "Move a subtask to this epic")
	editCmd.Flags().StringVarP(&editStart, "start", "s", "", "New start time")
	editCmd.Flags().DurationVar(&editDuration, "duration", 0, "New duration")
	editCmd.Flags().StringVar(&editStatus, "status", "", "New status")
	editCmd.Flags().BoolVar(&editUnschedule, "unschedule", false, "Clear the start time")
}

func editItem(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fatal("%v", err)
	}

	m := mustOpenManager()
	current, err := findItem(m, id)
	if err != nil {
		fatal("%v", err)
	}

	item, err := applyEdits(cmd, current.Base())
	if err != nil {
		fatal("%v", err)
	}

	switch v := current.(type) {
	case *taskboard.Task:
		err = m.EditTask(taskboard.Task{Item: item})
	case *taskboard.Epic:
		err = m.EditEpic(taskboard.Epic{Item: item})
	case *taskboard.Subtask:
		epicID := v.EpicID
		if cmd.Flags().Changed("epic") {
			epicID = editEpic
		}
		err = m.EditSubtask(taskboard.Subtask{Item: item, EpicID: epicID})
	}
	if err != nil {
		fatal("Failed to edit %d: %v", id, err)
	}

	fmt.Printf("✓ Updated %s %d: %s\n", current.Kind(), id, item.Name)
}

// applyEdits overlays the flags the user set onto item
func applyEdits(cmd *cobra.Command, item taskboard.Item) (taskboard.Item, error) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		item.Name = editName
	}
	if flags.Changed("description") {
		item.Description = editDescription
	}
	if flags.Changed("status") {
		status, err := parseStatusFlag(editStatus)
		if err != nil {
			return item, err
		}
		item.Status = status
	}
	if flags.Changed("start") {
		start, err := parseStart(editStart)
		if err != nil {
			return item, err
		}
		item.StartTime = start
	}
	if editUnschedule {
		item.StartTime = nil
	}
	if flags.Changed("duration") {
		item.Duration = editDuration
	}
	return item, nil
}
