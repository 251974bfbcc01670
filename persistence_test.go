package taskboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPersistenceRoundTrip saves a store through one manager and loads it
// back through another
func TestPersistenceRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data", "tasks.csv")

	// Step 1: Fill a store, every change is saved
	m1, err := NewManagerWithPersistence(path)
	require.NoError(t, err)

	taskID, err := m1.AddTask(Task{Item: Item{
		Name:        "Answer mail",
		Description: "inbox, then spam",
		Status:      StatusInProgress,
		StartTime:   at(0, 13, 10),
		Duration:    30 * time.Minute,
	}})
	require.NoError(t, err)

	epicID, err := m1.AddEpic(Epic{Item: Item{Name: "Cleanup", Description: "whole \"flat\""}})
	require.NoError(t, err)
	_, err = m1.AddEpic(Epic{Item: Item{Name: "Empty epic"}})
	require.NoError(t, err)

	// Explicit ids out of order so the epic's order differs from id order
	_, err = m1.AddSubtask(Subtask{Item: Item{ID: 40, Name: "Floors", StartTime: at(2, 9, 0), Duration: time.Hour}, EpicID: epicID})
	require.NoError(t, err)
	_, err = m1.AddSubtask(Subtask{Item: Item{ID: 30, Name: "Dust", Status: StatusDone}, EpicID: epicID})
	require.NoError(t, err)

	// Step 2: Views are not persisted
	_, err = m1.Task(taskID)
	require.NoError(t, err)

	assert.FileExists(t, path)

	// Step 3: Load a second manager from the same file
	m2, err := NewManagerWithPersistence(path)
	require.NoError(t, err)

	assert.Equal(t, m1.Tasks(), m2.Tasks())
	assert.Equal(t, m1.Epics(), m2.Epics())
	assert.Equal(t, m1.Subtasks(), m2.Subtasks())
	assert.Equal(t, m1.Prioritized(), m2.Prioritized())
	assert.Empty(t, m2.History())

	epic, err := m2.Epic(epicID)
	require.NoError(t, err)
	assert.Equal(t, []int{40, 30}, epic.SubtaskIDs)
	assert.Equal(t, StatusInProgress, epic.Status)

	// Step 4: The id counter continues after the highest restored id
	newID, err := m2.AddTask(Task{Item: Item{Name: "Later"}})
	require.NoError(t, err)
	assert.Equal(t, 41, newID)
}

func TestPersistenceDeletesAreSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	m1, err := NewManagerWithPersistence(path)
	require.NoError(t, err)

	epicID, _ := m1.AddEpic(Epic{Item: Item{Name: "Epic"}})
	_, _ = m1.AddSubtask(Subtask{Item: Item{Name: "Sub"}, EpicID: epicID})
	_, _ = m1.AddTask(Task{Item: Item{Name: "Task"}})
	require.NoError(t, m1.DeleteEpic(epicID))

	m2, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	assert.Empty(t, m2.Epics())
	assert.Empty(t, m2.Subtasks())
	assert.Len(t, m2.Tasks(), 1)

	require.NoError(t, m2.DeleteAllTasks())
	m3, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	assert.Empty(t, m3.Entities())
}

func TestPersistenceFailedChangeDoesNotSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	m, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	_, err = m.AddTask(Task{Item: Item{Name: "Only"}})
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = m.AddTask(Task{Item: Item{Name: "Only"}})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	m, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	_, _ = m.AddTask(Task{Item: Item{Name: "Ship parcel", StartTime: at(0, 16, 30), Duration: time.Hour}})
	epicID, _ := m.AddEpic(Epic{Item: Item{Name: "Sprint", Description: "a, b"}})
	_, _ = m.AddSubtask(Subtask{Item: Item{Name: "Theory", Status: StatusDone}, EpicID: epicID})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"id,type,name,status,description,epic,start_time,duration",
		"1,TASK,Ship parcel,NEW,,,2025-01-01T16:30:00,3600",
		`2,EPIC,Sprint,DONE,"a, b",,,0`,
		"3,SUBTASK,Theory,DONE,,2,,0",
	}, lines)
}

func TestLoadMissingOrEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	m, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	assert.Empty(t, m.Entities())

	require.NoError(t, os.WriteFile(path, nil, 0644))
	m, err = NewManagerWithPersistence(path)
	require.NoError(t, err)
	assert.Empty(t, m.Entities())
}

func TestLoadMalformedFile(t *testing.T) {
	header := "id,type,name,status,description,epic,start_time,duration\n"

	cases := map[string]string{
		"unknown kind":     "1,STORY,x,NEW,,,,0\n",
		"bad id":           "one,TASK,x,NEW,,,,0\n",
		"bad status":       "1,TASK,x,OPEN,,,,0\n",
		"bad start time":   "1,TASK,x,NEW,,,01.01.2025 10:00,0\n",
		"bad duration":     "1,TASK,x,NEW,,,,ten\n",
		"negative":         "1,TASK,x,NEW,,,,-5\n",
		"missing epic id":  "1,EPIC,e,NEW,,,,0\n2,SUBTASK,s,NEW,,,,0\n",
		"too few fields":   "1,TASK,x,NEW\n",
		"unbalanced quote": "1,TASK,\"x,NEW,,,,0\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.csv")
			require.NoError(t, os.WriteFile(path, []byte(header+body), 0644))

			_, err := NewManagerWithPersistence(path)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestLoadSubtaskBeforeItsEpicFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	body := "id,type,name,status,description,epic,start_time,duration\n" +
		"2,SUBTASK,s,NEW,,1,,0\n" +
		"1,EPIC,e,NEW,,,,0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := NewManagerWithPersistence(path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.csv")

	m, err := NewManagerWithPersistence(path)
	require.NoError(t, err)

	// Replace the file with a directory so opening it for writing fails
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))

	_, err = m.AddTask(Task{Item: Item{Name: "Lost"}})
	assert.ErrorIs(t, err, ErrSave)
}

func TestManagerWithoutFile(t *testing.T) {
	m := NewManager()

	id, err := m.AddTask(Task{Item: Item{Name: "In memory"}})
	require.NoError(t, err)

	task, err := m.Task(id)
	require.NoError(t, err)
	assert.Equal(t, "In memory", task.Name)
	assert.Len(t, m.History(), 1)
}

func TestNegativeDurationNeverReachesTheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	m, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	id, err := m.AddTask(Task{Item: Item{Name: "Ok", StartTime: at(0, 9, 0), Duration: time.Hour}})
	require.NoError(t, err)

	_, err = m.AddTask(Task{Item: Item{Name: "Backwards", StartTime: at(1, 9, 0), Duration: -time.Hour}})
	assert.ErrorIs(t, err, ErrInvalid)

	err = m.EditTask(Task{Item: Item{ID: id, Name: "Ok", StartTime: at(0, 9, 0), Duration: -time.Hour}})
	assert.ErrorIs(t, err, ErrInvalid)

	reloaded, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	tasks := reloaded.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, time.Hour, tasks[0].Duration)
}

func TestSubSecondValuesSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	m, err := NewManagerWithPersistence(path)
	require.NoError(t, err)

	start := at(0, 10, 0).Add(500 * time.Millisecond)
	_, err = m.AddTask(Task{Item: Item{Name: "Blink", StartTime: &start, Duration: 1500 * time.Millisecond}})
	require.NoError(t, err)

	reloaded, err := NewManagerWithPersistence(path)
	require.NoError(t, err)
	assert.Equal(t, m.Tasks(), reloaded.Tasks())
	assert.Equal(t, m.Prioritized(), reloaded.Prioritized())
}

func TestLoadRejectsOverflowingDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	body := "id,type,name,status,description,epic,start_time,duration\n" +
		"1,TASK,x,NEW,,,,9223372036854775807\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := NewManagerWithPersistence(path)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
