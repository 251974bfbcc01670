package taskboard

import "time"

// Test utilities - shared helpers for tests

// day1 is the reference day used by scheduling tests
var day1 = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// at returns a pointer to day1 + offsetDays at hh:mm
func at(offsetDays, hh, mm int) *time.Time {
	t := day1.AddDate(0, 0, offsetDays).Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
	return &t
}

func newTask(name string, start *time.Time, d time.Duration) Task {
	return Task{Item: Item{Name: name, StartTime: start, Duration: d}}
}

func newSubtask(name string, epicID int, status Status, start *time.Time, d time.Duration) Subtask {
	return Subtask{
		Item:   Item{Name: name, Status: status, StartTime: start, Duration: d},
		EpicID: epicID,
	}
}

func historyIDs(items []Entity) []int {
	ids := make([]int, 0, len(items))
	for _, e := range items {
		ids = append(ids, e.Base().ID)
	}
	return ids
}
