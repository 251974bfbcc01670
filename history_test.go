package taskboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewed(id int, name string) *Task {
	return &Task{Item: Item{ID: id, Name: name}}
}

func TestHistoryRecordAppendsNewestLast(t *testing.T) {
	h := newHistory()
	assert.Empty(t, h.snapshot())

	h.record(viewed(1, "a"))
	h.record(viewed(2, "b"))
	h.record(viewed(3, "c"))

	assert.Equal(t, []int{1, 2, 3}, historyIDs(h.snapshot()))
}

func TestHistoryDeduplicatesOnRecord(t *testing.T) {
	h := newHistory()

	h.record(viewed(1, "a"))
	h.record(viewed(2, "b"))
	for i := 0; i < 5; i++ {
		h.record(viewed(1, "a"))
	}
	h.record(viewed(2, "b v2"))
	h.record(viewed(1, "a v2"))

	snap := h.snapshot()
	assert.Equal(t, []int{2, 1}, historyIDs(snap))
	assert.Equal(t, "b v2", snap[0].Base().Name)
	assert.Equal(t, "a v2", snap[1].Base().Name)
	assert.Equal(t, 2, len(h.byID))
}

func TestHistoryForget(t *testing.T) {
	cases := []struct {
		name   string
		forget []int
		want   []int
	}{
		{"head", []int{1}, []int{2, 3, 4}},
		{"tail", []int{4}, []int{1, 2, 3}},
		{"middle", []int{2}, []int{1, 3, 4}},
		{"unknown", []int{99}, []int{1, 2, 3, 4}},
		{"everything", []int{3, 1, 4, 2}, []int{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHistory()
			for id := 1; id <= 4; id++ {
				h.record(viewed(id, "x"))
			}
			for _, id := range tc.forget {
				h.forget(id)
			}
			assert.Equal(t, tc.want, historyIDs(h.snapshot()))
		})
	}
}

func TestHistoryReusesFreedNodes(t *testing.T) {
	h := newHistory()

	for round := 0; round < 10; round++ {
		h.record(viewed(1, "a"))
		h.record(viewed(2, "b"))
		h.forget(1)
	}

	assert.Equal(t, []int{2}, historyIDs(h.snapshot()))
	assert.LessOrEqual(t, len(h.nodes), 3)

	h.record(viewed(3, "c"))
	h.record(viewed(1, "a"))
	assert.Equal(t, []int{2, 3, 1}, historyIDs(h.snapshot()))
}

func TestHistoryHoldsPointInTimeCopies(t *testing.T) {
	h := newHistory()

	task := viewed(1, "before")
	h.record(task)
	task.Name = "after"

	snap := h.snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "before", snap[0].Base().Name)

	snap[0].(*Task).Name = "mutated"
	assert.Equal(t, "before", h.snapshot()[0].Base().Name)
}
