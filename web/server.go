package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fmizzell/taskboard"
)

// RequestIDHeader carries the id of every request and its response
const RequestIDHeader = "X-Request-ID"

// Backend is the store the handlers work on. *taskboard.Manager
// satisfies it and serialises access.
type Backend interface {
	AddTask(taskboard.Task) (int, error)
	AddEpic(taskboard.Epic) (int, error)
	AddSubtask(taskboard.Subtask) (int, error)
	EditTask(taskboard.Task) error
	EditEpic(taskboard.Epic) error
	EditSubtask(taskboard.Subtask) error
	DeleteTask(id int) error
	DeleteEpic(id int) error
	DeleteSubtask(id int) error
	DeleteSubtasksOfEpic(epicID int) error
	DeleteAllTasks() error
	DeleteAllEpics() error
	DeleteAllSubtasks() error
	Task(id int) (*taskboard.Task, error)
	Epic(id int) (*taskboard.Epic, error)
	Subtask(id int) (*taskboard.Subtask, error)
	Tasks() []*taskboard.Task
	Epics() []*taskboard.Epic
	Subtasks() []*taskboard.Subtask
	SubtasksOfEpic(epicID int) ([]*taskboard.Subtask, error)
	Prioritized() []taskboard.Entity
	History() []taskboard.Entity
}

// Server is the taskboard HTTP API
type Server struct {
	backend Backend
	router  *gin.Engine
}

// NewServer creates a new API server. mode is a gin mode; empty keeps the
// current one.
func NewServer(backend Backend, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(requestID())
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "no such route")
	})

	s := &Server{
		backend: backend,
		router:  router,
	}

	for _, kind := range []taskboard.Kind{taskboard.KindTask, taskboard.KindEpic, taskboard.KindSubtask} {
		group := router.Group(collection(kind))
		{
			group.GET("", s.handleList(kind))
			group.POST("", s.handleSave(kind))
			group.DELETE("", s.handleDeleteAll(kind))
			group.GET("/:id", s.handleGet(kind))
			group.PUT("/:id", s.handleSave(kind))
			group.DELETE("/:id", s.handleDelete(kind))
		}
	}

	router.GET("/epics/:id/subtasks", s.handleEpicSubtasks)
	router.DELETE("/epics/:id/subtasks", s.handleDeleteEpicSubtasks)
	router.GET("/history", s.handleHistory)
	router.GET("/prioritized", s.handlePrioritized)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// requestID tags each request with a uuid unless the client sent one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func collection(kind taskboard.Kind) string {
	switch kind {
	case taskboard.KindEpic:
		return "/epics"
	case taskboard.KindSubtask:
		return "/subtasks"
	default:
		return "/tasks"
	}
}
