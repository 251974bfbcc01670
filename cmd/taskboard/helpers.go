package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fmizzell/taskboard"
)

// findItem looks an id up without touching the view history
func findItem(m *taskboard.Manager, id int) (taskboard.Entity, error) {
	for _, e := range m.Entities() {
		if e.Base().ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("item %d: %w", id, taskboard.ErrNotFound)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseStatusFlag accepts the status tags plus a few friendlier aliases
func parseStatusFlag(s string) (taskboard.Status, error) {
	switch strings.ToLower(s) {
	case "new", "todo", "pending":
		return taskboard.StatusNew, nil
	case "in-progress", "in_progress", "progress":
		return taskboard.StatusInProgress, nil
	case "done", "completed":
		return taskboard.StatusDone, nil
	}
	return "", fmt.Errorf("unknown status %q (use new, in-progress or done)", s)
}

func parseKindFlag(s string) (taskboard.Kind, error) {
	switch strings.ToLower(strings.TrimSuffix(s, "s")) {
	case "task":
		return taskboard.KindTask, nil
	case "epic":
		return taskboard.KindEpic, nil
	case "subtask":
		return taskboard.KindSubtask, nil
	}
	return "", fmt.Errorf("unknown kind %q (use task, epic or subtask)", s)
}

func parseStart(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	start, err := time.Parse(taskboard.TimeLayout, s)
	if err != nil {
		return nil, fmt.Errorf("start must look like %s", taskboard.TimeLayout)
	}
	return &start, nil
}

func statusIcon(s taskboard.Status) string {
	switch s {
	case taskboard.StatusDone:
		return "✓"
	case taskboard.StatusInProgress:
		return "→"
	default:
		return "○"
	}
}

// schedule renders the time window of an item, or nothing when unscheduled
func schedule(e taskboard.Entity) string {
	base := e.Base()
	if base.StartTime == nil {
		return ""
	}
	end := base.EndTime()
	if epic, ok := e.(*taskboard.Epic); ok {
		end = epic.EndTime()
	}
	return fmt.Sprintf("%s → %s (%s)", base.StartTime.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"), base.Duration)
}

// displayItem prints one line per item, with its schedule and description
// below it when present
func displayItem(e taskboard.Entity, indent int) {
	prefix := strings.Repeat("  ", indent)
	base := e.Base()

	fmt.Printf("%s%s [%d] %s (%s)\n", prefix, statusIcon(base.Status), base.ID, base.Name, strings.ToLower(string(e.Kind())))
	if base.Description != "" {
		fmt.Printf("%s   %s\n", prefix, base.Description)
	}
	if when := schedule(e); when != "" {
		fmt.Printf("%s   %s\n", prefix, when)
	}
}
