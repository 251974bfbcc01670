package taskboard

import (
	"fmt"
	"sort"
)

// Store holds every task, epic and subtask in memory, together with the
// scheduling index and the view history. It does no locking of its own:
// callers serialise access, and lookups count as writes since they touch
// the history.
type Store struct {
	tasks    map[int]*Task
	epics    map[int]*Epic
	subtasks map[int]*Subtask
	schedule *schedule
	history  *history
	ids      *idAllocator
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		tasks:    make(map[int]*Task),
		epics:    make(map[int]*Epic),
		subtasks: make(map[int]*Subtask),
		schedule: newSchedule(),
		history:  newHistory(),
		ids:      newIDAllocator(),
	}
}

// ============================================================================
// ADD
// ============================================================================

// AddTask stores a new task and returns its id. A non-zero ID is kept as is.
func (s *Store) AddTask(t Task) (int, error) {
	item := t.Item.clone()
	if err := item.validate(); err != nil {
		return 0, fmt.Errorf("task %q: %w", t.Name, err)
	}
	if containsEqual(s.tasks, t.Item) {
		return 0, fmt.Errorf("task %q: %w", t.Name, ErrAlreadyExists)
	}
	if err := s.checkFreeID(t.ID); err != nil {
		return 0, err
	}
	if s.schedule.overlaps(item.StartTime, item.Duration, 0) {
		return 0, fmt.Errorf("task %q: %w", t.Name, ErrTimeOverlap)
	}

	stored := &Task{Item: item}
	stored.ID = s.assignID(t.ID)
	s.tasks[stored.ID] = stored
	s.schedule.insert(stored)

	return stored.ID, nil
}

// AddEpic stores a new epic and returns its id. Subtask ids, status and
// schedule of the argument are ignored: an epic starts empty and NEW.
func (s *Store) AddEpic(e Epic) (int, error) {
	if containsEqual(s.epics, e.Item) {
		return 0, fmt.Errorf("epic %q: %w", e.Name, ErrAlreadyExists)
	}
	if err := s.checkFreeID(e.ID); err != nil {
		return 0, err
	}

	stored := &Epic{Item: e.Item.clone()}
	stored.ID = s.assignID(e.ID)
	s.rollup(stored)
	s.epics[stored.ID] = stored

	return stored.ID, nil
}

// AddSubtask stores a new subtask under its epic and returns its id
func (s *Store) AddSubtask(st Subtask) (int, error) {
	item := st.Item.clone()
	if err := item.validate(); err != nil {
		return 0, fmt.Errorf("subtask %q: %w", st.Name, err)
	}
	if containsEqual(s.subtasks, st.Item) {
		return 0, fmt.Errorf("subtask %q: %w", st.Name, ErrAlreadyExists)
	}
	epic, ok := s.epics[st.EpicID]
	if !ok {
		return 0, fmt.Errorf("epic %d for subtask %q: %w", st.EpicID, st.Name, ErrNotFound)
	}
	if err := s.checkFreeID(st.ID); err != nil {
		return 0, err
	}
	if s.schedule.overlaps(item.StartTime, item.Duration, 0) {
		return 0, fmt.Errorf("subtask %q: %w", st.Name, ErrTimeOverlap)
	}

	stored := &Subtask{Item: item, EpicID: st.EpicID}
	stored.ID = s.assignID(st.ID)
	s.subtasks[stored.ID] = stored
	s.schedule.insert(stored)

	epic.SubtaskIDs = append(epic.SubtaskIDs, stored.ID)
	s.rollup(epic)

	return stored.ID, nil
}

// checkFreeID rejects a pre-supplied id that another kind already uses.
// Ids are shared by all kinds.
func (s *Store) checkFreeID(id int) error {
	if id == 0 {
		return nil
	}
	if kind, ok := s.kindOf(id); ok {
		return fmt.Errorf("id %d is taken by a %s: %w", id, kind, ErrAlreadyExists)
	}
	return nil
}

func (s *Store) assignID(id int) int {
	if id == 0 {
		return s.ids.nextID()
	}
	s.ids.reserve(id)
	return id
}

func (s *Store) kindOf(id int) (Kind, bool) {
	if _, ok := s.tasks[id]; ok {
		return KindTask, true
	}
	if _, ok := s.epics[id]; ok {
		return KindEpic, true
	}
	if _, ok := s.subtasks[id]; ok {
		return KindSubtask, true
	}
	return "", false
}

// ============================================================================
// EDIT
// ============================================================================

// EditTask replaces the stored task with the same id
func (s *Store) EditTask(t Task) error {
	if t.ID == 0 {
		return fmt.Errorf("edit task %q: %w", t.Name, ErrWithoutID)
	}
	if _, ok := s.tasks[t.ID]; !ok {
		return fmt.Errorf("task %d: %w", t.ID, ErrNotFound)
	}
	item := t.Item.clone()
	if err := item.validate(); err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}
	if s.schedule.overlaps(item.StartTime, item.Duration, t.ID) {
		return fmt.Errorf("task %d: %w", t.ID, ErrTimeOverlap)
	}

	stored := &Task{Item: item}
	s.tasks[t.ID] = stored
	s.schedule.insert(stored)

	return nil
}

// EditEpic renames an epic or changes its description. Everything else
// about an epic is derived from its subtasks.
func (s *Store) EditEpic(e Epic) error {
	if e.ID == 0 {
		return fmt.Errorf("edit epic %q: %w", e.Name, ErrWithoutID)
	}
	stored, ok := s.epics[e.ID]
	if !ok {
		return fmt.Errorf("epic %d: %w", e.ID, ErrNotFound)
	}

	stored.Name = e.Name
	stored.Description = e.Description
	return nil
}

// EditSubtask replaces the stored subtask with the same id. A changed EpicID
// moves the subtask to the end of the new epic's list.
func (s *Store) EditSubtask(st Subtask) error {
	if st.ID == 0 || st.EpicID == 0 {
		return fmt.Errorf("edit subtask %q: %w", st.Name, ErrWithoutID)
	}
	epic, ok := s.epics[st.EpicID]
	if !ok {
		return fmt.Errorf("epic %d for subtask %d: %w", st.EpicID, st.ID, ErrNotFound)
	}
	current, ok := s.subtasks[st.ID]
	if !ok {
		return fmt.Errorf("subtask %d: %w", st.ID, ErrNotFound)
	}
	item := st.Item.clone()
	if err := item.validate(); err != nil {
		return fmt.Errorf("subtask %d: %w", st.ID, err)
	}
	if s.schedule.overlaps(item.StartTime, item.Duration, st.ID) {
		return fmt.Errorf("subtask %d: %w", st.ID, ErrTimeOverlap)
	}

	stored := &Subtask{Item: item, EpicID: st.EpicID}
	s.subtasks[st.ID] = stored
	s.schedule.insert(stored)

	if current.EpicID != st.EpicID {
		if previous, ok := s.epics[current.EpicID]; ok {
			previous.removeSubtaskID(st.ID)
			s.rollup(previous)
		}
		epic.SubtaskIDs = append(epic.SubtaskIDs, st.ID)
	}
	s.rollup(epic)

	return nil
}

// ============================================================================
// DELETE
// ============================================================================

// DeleteTask removes a task
func (s *Store) DeleteTask(id int) error {
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	delete(s.tasks, id)
	s.schedule.remove(id)
	s.history.forget(id)
	return nil
}

// DeleteEpic removes an epic together with all of its subtasks
func (s *Store) DeleteEpic(id int) error {
	epic, ok := s.epics[id]
	if !ok {
		return fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	for _, sid := range epic.SubtaskIDs {
		s.dropSubtask(sid)
	}
	delete(s.epics, id)
	s.history.forget(id)
	return nil
}

// DeleteSubtask removes a subtask and re-rolls its epic
func (s *Store) DeleteSubtask(id int) error {
	st, ok := s.subtasks[id]
	if !ok {
		return fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	s.dropSubtask(id)
	if epic, ok := s.epics[st.EpicID]; ok {
		epic.removeSubtaskID(id)
		s.rollup(epic)
	}
	return nil
}

// DeleteSubtasksOfEpic removes every subtask of one epic
func (s *Store) DeleteSubtasksOfEpic(epicID int) error {
	epic, ok := s.epics[epicID]
	if !ok {
		return fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
	}
	for _, sid := range epic.SubtaskIDs {
		s.dropSubtask(sid)
	}
	epic.SubtaskIDs = nil
	s.rollup(epic)
	return nil
}

// DeleteAllTasks removes every task
func (s *Store) DeleteAllTasks() {
	for id := range s.tasks {
		s.schedule.remove(id)
		s.history.forget(id)
	}
	s.tasks = make(map[int]*Task)
}

// DeleteAllEpics removes every epic and, with them, every subtask
func (s *Store) DeleteAllEpics() {
	for id := range s.subtasks {
		s.dropSubtask(id)
	}
	for id := range s.epics {
		s.history.forget(id)
	}
	s.epics = make(map[int]*Epic)
}

// DeleteAllSubtasks removes every subtask and resets each epic to the
// empty-subtask roll-up
func (s *Store) DeleteAllSubtasks() {
	for id := range s.subtasks {
		s.dropSubtask(id)
	}
	for _, epic := range s.epics {
		epic.SubtaskIDs = nil
		s.rollup(epic)
	}
}

// dropSubtask unlinks a subtask from the maps and indexes, but not from its epic
func (s *Store) dropSubtask(id int) {
	delete(s.subtasks, id)
	s.schedule.remove(id)
	s.history.forget(id)
}

// ============================================================================
// QUERIES
// ============================================================================

// Task returns a copy of a task and records the view in the history
func (s *Store) Task(id int) (*Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	s.history.record(t)
	return t.clone().(*Task), nil
}

// Epic returns a copy of an epic and records the view in the history
func (s *Store) Epic(id int) (*Epic, error) {
	e, ok := s.epics[id]
	if !ok {
		return nil, fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	s.history.record(e)
	return e.clone().(*Epic), nil
}

// Subtask returns a copy of a subtask and records the view in the history
func (s *Store) Subtask(id int) (*Subtask, error) {
	st, ok := s.subtasks[id]
	if !ok {
		return nil, fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	s.history.record(st)
	return st.clone().(*Subtask), nil
}

// Tasks returns all tasks ordered by id
func (s *Store) Tasks() []*Task {
	tasks := make([]*Task, 0, len(s.tasks))
	for _, id := range sortedIDs(s.tasks) {
		tasks = append(tasks, s.tasks[id].clone().(*Task))
	}
	return tasks
}

// Epics returns all epics ordered by id
func (s *Store) Epics() []*Epic {
	epics := make([]*Epic, 0, len(s.epics))
	for _, id := range sortedIDs(s.epics) {
		epics = append(epics, s.epics[id].clone().(*Epic))
	}
	return epics
}

// Subtasks returns all subtasks ordered by id
func (s *Store) Subtasks() []*Subtask {
	subtasks := make([]*Subtask, 0, len(s.subtasks))
	for _, id := range sortedIDs(s.subtasks) {
		subtasks = append(subtasks, s.subtasks[id].clone().(*Subtask))
	}
	return subtasks
}

// SubtasksOfEpic returns an epic's subtasks in the order they were added
func (s *Store) SubtasksOfEpic(epicID int) ([]*Subtask, error) {
	epic, ok := s.epics[epicID]
	if !ok {
		return nil, fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
	}

	subtasks := make([]*Subtask, 0, len(epic.SubtaskIDs))
	for _, id := range epic.SubtaskIDs {
		subtasks = append(subtasks, s.subtasks[id].clone().(*Subtask))
	}
	return subtasks, nil
}

// Entities returns tasks, then epics, then subtasks
func (s *Store) Entities() []Entity {
	all := make([]Entity, 0, len(s.tasks)+len(s.epics)+len(s.subtasks))
	for _, t := range s.Tasks() {
		all = append(all, t)
	}
	for _, e := range s.Epics() {
		all = append(all, e)
	}
	for _, st := range s.Subtasks() {
		all = append(all, st)
	}
	return all
}

// Prioritized returns every scheduled task and subtask, earliest start first
func (s *Store) Prioritized() []Entity {
	return s.schedule.ascending()
}

// NextUp returns the earliest scheduled item that is not DONE, or nil
func (s *Store) NextUp() Entity {
	for _, e := range s.schedule.ascending() {
		if e.Base().Status != StatusDone {
			return e
		}
	}
	return nil
}

// History returns the viewed items, least recently viewed first
func (s *Store) History() []Entity {
	return s.history.snapshot()
}

// containsEqual reports whether any stored value has the same identity as item
func containsEqual[T Entity](m map[int]T, item Item) bool {
	for _, v := range m {
		if sameIdentity(v.Base(), item) {
			return true
		}
	}
	return false
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
