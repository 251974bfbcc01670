package web

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fmizzell/taskboard"
)

// maxDurationMinutes keeps minutes*time.Minute inside time.Duration
const maxDurationMinutes = math.MaxInt64 / int64(time.Minute)

// itemJSON is the wire form of every kind of item. Durations are whole
// minutes and times use taskboard.TimeLayout.
type itemJSON struct {
	ID          int    `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	Duration    int64  `json:"duration"`
	EndTime     string `json:"endTime,omitempty"`
	EpicID      int    `json:"epicId,omitempty"`
	SubtaskIDs  []int  `json:"subtaskIds,omitempty"`
}

func toJSON(e taskboard.Entity) itemJSON {
	base := e.Base()
	out := itemJSON{
		ID:          base.ID,
		Type:        string(e.Kind()),
		Name:        base.Name,
		Description: base.Description,
		Status:      string(base.Status),
		StartTime:   formatTime(base.StartTime),
		Duration:    int64(base.Duration / time.Minute),
		EndTime:     formatTime(base.EndTime()),
	}

	switch v := e.(type) {
	case *taskboard.Epic:
		out.EndTime = formatTime(v.EndTime())
		out.SubtaskIDs = v.SubtaskIDs
	case *taskboard.Subtask:
		out.EpicID = v.EpicID
	}
	return out
}

func toJSONList[T taskboard.Entity](items []T) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, toJSON(item))
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(taskboard.TimeLayout)
}

// toItem validates the request body and builds the shared fields
func (in itemJSON) toItem() (taskboard.Item, error) {
	if in.Name == "" {
		return taskboard.Item{}, errors.New("name is required")
	}
	if in.Duration < 0 {
		return taskboard.Item{}, errors.New("duration must not be negative")
	}
	if in.Duration > maxDurationMinutes {
		return taskboard.Item{}, fmt.Errorf("duration must be at most %d minutes", maxDurationMinutes)
	}

	item := taskboard.Item{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Status:      taskboard.StatusNew,
		Duration:    time.Duration(in.Duration) * time.Minute,
	}

	if in.Status != "" {
		status, err := taskboard.ParseStatus(in.Status)
		if err != nil {
			return taskboard.Item{}, err
		}
		item.Status = status
	}

	if in.StartTime != "" {
		start, err := time.Parse(taskboard.TimeLayout, in.StartTime)
		if err != nil {
			return taskboard.Item{}, fmt.Errorf("startTime must look like %s", taskboard.TimeLayout)
		}
		item.StartTime = &start
	}

	return item, nil
}

// statusFor maps store errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, taskboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, taskboard.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, taskboard.ErrWithoutID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, taskboard.ErrTimeOverlap):
		return http.StatusNotAcceptable
	case errors.Is(err, taskboard.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

func failErr(c *gin.Context, err error) {
	fail(c, statusFor(err), err.Error())
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, fmt.Sprintf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// Collection handlers

func (s *Server) handleList(kind taskboard.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []itemJSON
		switch kind {
		case taskboard.KindTask:
			items = toJSONList(s.backend.Tasks())
		case taskboard.KindEpic:
			items = toJSONList(s.backend.Epics())
		default:
			items = toJSONList(s.backend.Subtasks())
		}
		ok(c, http.StatusOK, items)
	}
}

func (s *Server) handleGet(kind taskboard.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c)
		if !valid {
			return
		}

		var (
			item taskboard.Entity
			err  error
		)
		switch kind {
		case taskboard.KindTask:
			item, err = s.backend.Task(id)
		case taskboard.KindEpic:
			item, err = s.backend.Epic(id)
		default:
			item, err = s.backend.Subtask(id)
		}
		if err != nil {
			failErr(c, err)
			return
		}

		ok(c, http.StatusOK, toJSON(item))
	}
}

// handleSave adds the item when it carries no id and edits it otherwise.
// On PUT the id comes from the path.
func (s *Server) handleSave(kind taskboard.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in itemJSON
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}

		if c.Param("id") != "" {
			id, valid := pathID(c)
			if !valid {
				return
			}
			in.ID = id
		}

		item, err := in.toItem()
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if kind == taskboard.KindSubtask && in.EpicID <= 0 {
			fail(c, http.StatusBadRequest, "epicId is required")
			return
		}

		editing := item.ID != 0
		id := item.ID
		switch kind {
		case taskboard.KindTask:
			task := taskboard.Task{Item: item}
			if editing {
				err = s.backend.EditTask(task)
			} else {
				id, err = s.backend.AddTask(task)
			}
		case taskboard.KindEpic:
			epic := taskboard.Epic{Item: item}
			if editing {
				err = s.backend.EditEpic(epic)
			} else {
				id, err = s.backend.AddEpic(epic)
			}
		default:
			subtask := taskboard.Subtask{Item: item, EpicID: in.EpicID}
			if editing {
				err = s.backend.EditSubtask(subtask)
			} else {
				id, err = s.backend.AddSubtask(subtask)
			}
		}
		if err != nil {
			failErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"id":      id,
		})
	}
}

func (s *Server) handleDelete(kind taskboard.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c)
		if !valid {
			return
		}

		var err error
		switch kind {
		case taskboard.KindTask:
			err = s.backend.DeleteTask(id)
		case taskboard.KindEpic:
			err = s.backend.DeleteEpic(id)
		default:
			err = s.backend.DeleteSubtask(id)
		}
		if err != nil {
			failErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (s *Server) handleDeleteAll(kind taskboard.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var err error
		switch kind {
		case taskboard.KindTask:
			err = s.backend.DeleteAllTasks()
		case taskboard.KindEpic:
			err = s.backend.DeleteAllEpics()
		default:
			err = s.backend.DeleteAllSubtasks()
		}
		if err != nil {
			failErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Epic subtasks

func (s *Server) handleEpicSubtasks(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	subtasks, err := s.backend.SubtasksOfEpic(id)
	if err != nil {
		failErr(c, err)
		return
	}

	ok(c, http.StatusOK, toJSONList(subtasks))
}

func (s *Server) handleDeleteEpicSubtasks(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := s.backend.DeleteSubtasksOfEpic(id); err != nil {
		failErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Views

func (s *Server) handleHistory(c *gin.Context) {
	ok(c, http.StatusOK, toJSONList(s.backend.History()))
}

func (s *Server) handlePrioritized(c *gin.Context) {
	ok(c, http.StatusOK, toJSONList(s.backend.Prioritized()))
}
