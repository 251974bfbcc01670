package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Load sample tasks, epics and subtasks",
	Long: `Load a sample week of tasks, epics and subtasks into the data file.
Two of the samples collide with earlier ones on purpose and are rejected.`,
	Run: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) {
	m := mustOpenManager()

	added, rejected := seedDemo(m)

	fmt.Printf("✓ Added %d items\n", added)
	for _, err := range rejected {
		fmt.Printf("  ✗ %v\n", err)
	}
	fmt.Printf("  %d tasks, %d epics, %d subtasks\n", len(m.Tasks()), len(m.Epics()), len(m.Subtasks()))

	if next := m.NextUp(); next != nil {
		fmt.Println()
		fmt.Println("📋 Next up:")
		displayItem(next, 1)
	}
}

func demoTime(day, hour, minute int) *time.Time {
	t := time.Date(2025, time.January, day, hour, minute, 0, 0, time.UTC)
	return &t
}

// seedDemo adds the sample items and returns how many were stored and why
// the rest were not
func seedDemo(m *taskboard.Manager) (int, []error) {
	item := func(id int, name, desc string, start *time.Time, d time.Duration) taskboard.Item {
		return taskboard.Item{ID: id, Name: name, Description: desc, Status: taskboard.StatusNew, StartTime: start, Duration: d}
	}

	tasks := []taskboard.Task{
		{Item: item(1, "Answer mail", "", demoTime(1, 13, 10), 30*time.Minute)},
		{Item: item(2, "Ship parcel", "Recipient address is in the account", demoTime(1, 16, 30), time.Hour)},
		{Item: item(17, "Pick up parcel", "", demoTime(1, 13, 10), time.Hour)},
	}
	epics := []taskboard.Epic{
		{Item: item(3, "Clean the flat", "", nil, 0)},
		{Item: item(4, "Finish the sprint", "", nil, 0)},
		{Item: item(5, "Finish sprint 9", "Finally", nil, 0)},
		{Item: item(6, "Big goal without a plan", "No plan, no steps", nil, 0)},
	}
	subtasks := []taskboard.Subtask{
		{Item: item(7, "Dust", "Use the screen cleaner on monitors", demoTime(2, 13, 10), 30*time.Minute), EpicID: 3},
		{Item: item(8, "Mop floors", "", demoTime(3, 13, 10), time.Hour), EpicID: 3},
		{Item: item(9, "Scrub the bathroom", "", demoTime(8, 9, 15), 90*time.Minute), EpicID: 3},
		{Item: item(10, "Take out trash", "", demoTime(7, 9, 15), 30*time.Minute), EpicID: 3},
		{Item: item(11, "Read the theory", "", demoTime(6, 9, 15), time.Hour), EpicID: 4},
		{Item: item(12, "Attend the webinar", "", demoTime(5, 9, 15), 90*time.Minute), EpicID: 4},
		{Item: item(13, "Do the practice", "", demoTime(4, 13, 10), 30*time.Minute), EpicID: 4},
		{Item: item(14, "Write the list", "", demoTime(9, 9, 15), time.Hour), EpicID: 5},
		{Item: item(15, "Link it to the map", "", demoTime(9, 9, 15), 90*time.Minute), EpicID: 5},
		{Item: item(16, "Fix the other methods", "", demoTime(10, 20, 30), 30*time.Minute), EpicID: 5},
	}

	added := 0
	var rejected []error
	record := func(name string, err error) {
		if err == nil {
			added++
			return
		}
		rejected = append(rejected, fmt.Errorf("%s: %w", name, err))
	}

	for _, t := range tasks {
		_, err := m.AddTask(t)
		record(t.Name, err)
	}
	for _, e := range epics {
		_, err := m.AddEpic(e)
		record(e.Name, err)
	}
	for _, st := range subtasks {
		_, err := m.AddSubtask(st)
		record(st.Name, err)
	}

	return added, rejected
}
