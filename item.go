package taskboard

import (
	"fmt"
	"time"
)

// Status is the progress state of a work item
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus converts a status tag into a Status
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Kind identifies the concrete variant of an Entity
type Kind string

const (
	KindTask    Kind = "TASK"
	KindEpic    Kind = "EPIC"
	KindSubtask Kind = "SUBTASK"
)

// ParseKind converts a kind tag into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTask, KindEpic, KindSubtask:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Item holds the fields shared by every kind of work item.
// An ID of zero means the item has not been stored yet.
type Item struct {
	ID          int
	Name        string
	Description string
	Status      Status
	StartTime   *time.Time
	Duration    time.Duration
}

// EndTime returns StartTime+Duration, or nil for an unscheduled item
func (i Item) EndTime() *time.Time {
	if i.StartTime == nil {
		return nil
	}
	end := i.StartTime.Add(i.Duration)
	return &end
}

// clone copies the item at the whole-second precision the snapshot file keeps
func (i Item) clone() Item {
	c := i
	if i.StartTime != nil {
		start := i.StartTime.Truncate(time.Second)
		c.StartTime = &start
	}
	c.Duration = i.Duration.Truncate(time.Second)
	if c.Status == "" {
		c.Status = StatusNew
	}
	return c
}

// validate rejects values the snapshot file cannot hold
func (i Item) validate() error {
	if i.Duration < 0 {
		return fmt.Errorf("negative duration %s: %w", i.Duration, ErrInvalid)
	}
	return nil
}

// sameIdentity is the equality rule used for duplicate detection: stored items
// compare by id, anything else compares by name and description.
func sameIdentity(a, b Item) bool {
	if a.ID != 0 && b.ID != 0 {
		return a.ID == b.ID
	}
	return a.Name == b.Name && a.Description == b.Description
}

// Entity is one of *Task, *Epic or *Subtask
type Entity interface {
	Kind() Kind
	Base() Item
	clone() Entity
}

// Task is a standalone unit of work
type Task struct {
	Item
}

func (t *Task) Kind() Kind    { return KindTask }
func (t *Task) Base() Item    { return t.Item }
func (t *Task) clone() Entity { return &Task{Item: t.Item.clone()} }

// Epic groups subtasks. Its status and time window are derived from them.
type Epic struct {
	Item
	SubtaskIDs []int
	end        *time.Time
}

func (e *Epic) Kind() Kind { return KindEpic }
func (e *Epic) Base() Item { return e.Item }

// EndTime is the latest end among the epic's scheduled, unfinished subtasks
func (e *Epic) EndTime() *time.Time {
	if e.end == nil {
		return nil
	}
	end := *e.end
	return &end
}

func (e *Epic) clone() Entity {
	c := &Epic{Item: e.Item.clone(), end: e.EndTime()}
	if e.SubtaskIDs != nil {
		c.SubtaskIDs = append([]int{}, e.SubtaskIDs...)
	}
	return c
}

func (e *Epic) removeSubtaskID(id int) {
	for i, sid := range e.SubtaskIDs {
		if sid == id {
			e.SubtaskIDs = append(e.SubtaskIDs[:i], e.SubtaskIDs[i+1:]...)
			return
		}
	}
}

// Subtask is a unit of work that belongs to exactly one epic
type Subtask struct {
	Item
	EpicID int
}

func (s *Subtask) Kind() Kind    { return KindSubtask }
func (s *Subtask) Base() Item    { return s.Item }
func (s *Subtask) clone() Entity { return &Subtask{Item: s.Item.clone(), EpicID: s.EpicID} }
