package taskboard

import "time"

// rollupStatus derives an epic's status from its subtasks' statuses.
// No subtasks, or all NEW, is NEW; all DONE is DONE; anything else is IN_PROGRESS.
func rollupStatus(statuses []Status) Status {
	allNew, allDone := true, true
	for _, st := range statuses {
		switch st {
		case StatusNew:
			allDone = false
		case StatusDone:
			allNew = false
		default:
			return StatusInProgress
		}
	}

	switch {
	case allNew:
		return StatusNew
	case allDone:
		return StatusDone
	}
	return StatusInProgress
}

// window is the derived schedule of an epic
type window struct {
	start    *time.Time
	end      *time.Time
	duration time.Duration
}

// rollupWindow spans the scheduled subtasks that are not DONE yet.
// Finished work drops out of the window.
func rollupWindow(subtasks []*Subtask) window {
	var w window
	for _, st := range subtasks {
		if st.StartTime == nil || st.Status == StatusDone {
			continue
		}
		start := *st.StartTime
		end := start.Add(st.Duration)
		if w.start == nil || start.Before(*w.start) {
			w.start = &start
		}
		if w.end == nil || end.After(*w.end) {
			w.end = &end
		}
	}

	if w.start != nil {
		w.duration = w.end.Sub(*w.start)
	}
	return w
}

// rollup recomputes status and window of an epic from its stored subtasks
func (s *Store) rollup(epic *Epic) {
	subtasks := make([]*Subtask, 0, len(epic.SubtaskIDs))
	statuses := make([]Status, 0, len(epic.SubtaskIDs))
	for _, id := range epic.SubtaskIDs {
		if st, ok := s.subtasks[id]; ok {
			subtasks = append(subtasks, st)
			statuses = append(statuses, st.Status)
		}
	}

	epic.Status = rollupStatus(statuses)

	w := rollupWindow(subtasks)
	epic.StartTime = w.start
	epic.end = w.end
	epic.Duration = w.duration
}
