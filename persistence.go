package taskboard

import (
	"fmt"
	"sync"
)

// Manager guards a Store with a mutex and, when backed by a file, writes a
// full snapshot after every successful change.
type Manager struct {
	mu    sync.Mutex
	store *Store
	repo  *FileRepository
}

// NewManager creates a Manager over an empty in-memory store
func NewManager() *Manager {
	return &Manager{store: NewStore()}
}

// NewManagerWithPersistence creates a Manager backed by the snapshot file at
// path. Items already in the file are loaded into a fresh store first.
func NewManagerWithPersistence(path string) (*Manager, error) {
	repo, err := NewFileRepository(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	items, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	store := NewStore()
	if err := Restore(store, items); err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", path, err)
	}

	return &Manager{store: store, repo: repo}, nil
}

// Restore re-adds items into store, keeping their ids. Epics must come
// before their subtasks.
func Restore(store *Store, items []Entity) error {
	for _, item := range items {
		var err error
		switch v := item.(type) {
		case *Task:
			_, err = store.AddTask(*v)
		case *Epic:
			_, err = store.AddEpic(*v)
		case *Subtask:
			_, err = store.AddSubtask(*v)
		}
		if err != nil {
			return fmt.Errorf("%s %d: %w", item.Kind(), item.Base().ID, err)
		}
	}
	return nil
}

// Snapshot lists tasks, then epics, then each epic's subtasks in the epic's
// order, so that Restore rebuilds the same store.
func Snapshot(store *Store) []Entity {
	var items []Entity
	for _, t := range store.Tasks() {
		items = append(items, t)
	}

	epics := store.Epics()
	for _, e := range epics {
		items = append(items, e)
	}
	for _, e := range epics {
		subtasks, _ := store.SubtasksOfEpic(e.ID)
		for _, st := range subtasks {
			items = append(items, st)
		}
	}
	return items
}

// save runs with mu held
func (m *Manager) save() error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.Save(Snapshot(m.store)); err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// mutate runs fn under the lock and saves when it succeeds
func (m *Manager) mutate(fn func(*Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fn(m.store); err != nil {
		return err
	}
	return m.save()
}

func (m *Manager) read(fn func(*Store)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.store)
}

// ============================================================================
// MUTATIONS
// ============================================================================

// AddTask stores a new task and saves the file
func (m *Manager) AddTask(t Task) (id int, err error) {
	err = m.mutate(func(s *Store) (err error) {
		id, err = s.AddTask(t)
		return err
	})
	return id, err
}

// AddEpic stores a new, empty epic and saves the file
func (m *Manager) AddEpic(e Epic) (id int, err error) {
	err = m.mutate(func(s *Store) (err error) {
		id, err = s.AddEpic(e)
		return err
	})
	return id, err
}

// AddSubtask stores a subtask under its epic and saves the file
func (m *Manager) AddSubtask(st Subtask) (id int, err error) {
	err = m.mutate(func(s *Store) (err error) {
		id, err = s.AddSubtask(st)
		return err
	})
	return id, err
}

// EditTask replaces a stored task and saves the file
func (m *Manager) EditTask(t Task) error {
	return m.mutate(func(s *Store) error { return s.EditTask(t) })
}

// EditEpic renames or redescribes an epic and saves the file
func (m *Manager) EditEpic(e Epic) error {
	return m.mutate(func(s *Store) error { return s.EditEpic(e) })
}

// EditSubtask replaces a stored subtask, moving it if its epic changed
func (m *Manager) EditSubtask(st Subtask) error {
	return m.mutate(func(s *Store) error { return s.EditSubtask(st) })
}

// DeleteTask removes a task and saves the file
func (m *Manager) DeleteTask(id int) error {
	return m.mutate(func(s *Store) error { return s.DeleteTask(id) })
}

// DeleteEpic removes an epic with all of its subtasks
func (m *Manager) DeleteEpic(id int) error {
	return m.mutate(func(s *Store) error { return s.DeleteEpic(id) })
}

// DeleteSubtask removes a subtask and re-rolls its epic
func (m *Manager) DeleteSubtask(id int) error {
	return m.mutate(func(s *Store) error { return s.DeleteSubtask(id) })
}

// DeleteSubtasksOfEpic empties one epic
func (m *Manager) DeleteSubtasksOfEpic(epicID int) error {
	return m.mutate(func(s *Store) error { return s.DeleteSubtasksOfEpic(epicID) })
}

// DeleteAllTasks removes every task
func (m *Manager) DeleteAllTasks() error {
	return m.mutate(func(s *Store) error { s.DeleteAllTasks(); return nil })
}

// DeleteAllEpics removes every epic and subtask
func (m *Manager) DeleteAllEpics() error {
	return m.mutate(func(s *Store) error { s.DeleteAllEpics(); return nil })
}

// DeleteAllSubtasks removes every subtask and resets the epics
func (m *Manager) DeleteAllSubtasks() error {
	return m.mutate(func(s *Store) error { s.DeleteAllSubtasks(); return nil })
}

// ============================================================================
// QUERIES
// ============================================================================

// Lookups by id update the history, so they take the lock like writes do.

// Task returns a copy of a task and records the view
func (m *Manager) Task(id int) (t *Task, err error) {
	m.read(func(s *Store) { t, err = s.Task(id) })
	return t, err
}

// Epic returns a copy of an epic and records the view
func (m *Manager) Epic(id int) (e *Epic, err error) {
	m.read(func(s *Store) { e, err = s.Epic(id) })
	return e, err
}

// Subtask returns a copy of a subtask and records the view
func (m *Manager) Subtask(id int) (st *Subtask, err error) {
	m.read(func(s *Store) { st, err = s.Subtask(id) })
	return st, err
}

// Tasks lists every task by id
func (m *Manager) Tasks() (tasks []*Task) {
	m.read(func(s *Store) { tasks = s.Tasks() })
	return tasks
}

// Epics lists every epic by id
func (m *Manager) Epics() (epics []*Epic) {
	m.read(func(s *Store) { epics = s.Epics() })
	return epics
}

// Subtasks lists every subtask by id
func (m *Manager) Subtasks() (subtasks []*Subtask) {
	m.read(func(s *Store) { subtasks = s.Subtasks() })
	return subtasks
}

// SubtasksOfEpic lists one epic's subtasks in insertion order
func (m *Manager) SubtasksOfEpic(epicID int) (subtasks []*Subtask, err error) {
	m.read(func(s *Store) { subtasks, err = s.SubtasksOfEpic(epicID) })
	return subtasks, err
}

// Entities lists tasks, then epics, then subtasks
func (m *Manager) Entities() (items []Entity) {
	m.read(func(s *Store) { items = s.Entities() })
	return items
}

// Prioritized lists scheduled tasks and subtasks, earliest first
func (m *Manager) Prioritized() (items []Entity) {
	m.read(func(s *Store) { items = s.Prioritized() })
	return items
}

// NextUp returns the earliest scheduled item not yet done, or nil
func (m *Manager) NextUp() (item Entity) {
	m.read(func(s *Store) { item = s.NextUp() })
	return item
}

// History lists viewed items, least recent first
func (m *Manager) History() (items []Entity) {
	m.read(func(s *Store) { items = s.History() })
	return items
}
