package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/runner"
	"github.com/aretw0/tasklist/pkg/view"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ResourceURI is the read-only view of the whole list.
const ResourceURI = "tasklist://tasks"

// ErrNotConfirmed is returned by clear_all without confirm=true.
var ErrNotConfirmed = errors.New("clear_all deletes every task; call it again with confirm=true")

// Session is the part of a task session exposed as MCP tools.
type Session interface {
	Create(ctx context.Context, text string) (domain.Task, error)
	Toggle(ctx context.Context, id int64) bool
	Remove(ctx context.Context, id int64) bool
	ClearAll(ctx context.Context) bool
	ClearCompleted(ctx context.Context) int
	Get(id int64) (domain.Task, bool)
	Tasks() []domain.Task
	Count() domain.Counts
}

var _ Session = (*tasklist.Session)(nil)

// TaskResponse is returned by tools that act on one task.
type TaskResponse struct {
	Task   domain.Record `json:"task" jsonschema_description:"The task after the operation"`
	Counts domain.Counts `json:"counts" jsonschema_description:"Counts of the whole list"`
}

// DeleteResponse is returned by delete_task.
type DeleteResponse struct {
	Deleted bool          `json:"deleted" jsonschema_description:"Whether a task was deleted"`
	Counts  domain.Counts `json:"counts" jsonschema_description:"Counts of the whole list"`
}

// ClearResponse is returned by the clear tools.
type ClearResponse struct {
	Removed int           `json:"removed" jsonschema_description:"Number of tasks removed"`
	Counts  domain.Counts `json:"counts" jsonschema_description:"Counts of the whole list"`
}

// AddArgs are the add_task arguments.
type AddArgs struct {
	Text string `json:"text"`
}

// ListArgs are the list_tasks arguments.
type ListArgs struct {
	Query string `json:"query"`
}

// IDArgs are the arguments of tools addressing one task.
type IDArgs struct {
	ID int64 `json:"id"`
}

// ClearAllArgs are the clear_all arguments.
type ClearAllArgs struct {
	Confirm bool `json:"confirm"`
}

// Server exposes one task list as an MCP server. Every session call holds mu.
type Server struct {
	mu        sync.Mutex
	session   Session
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(session Session) *Server {
	s := &Server{
		session:   session,
		mcpServer: server.NewMCPServer("tasklist-mcp", tasklist.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add a task to the end of the list."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Task text; surrounding whitespace is trimmed")),
		mcp.WithOutputSchema[TaskResponse](),
	), mcp.NewStructuredToolHandler(s.handleAdd))

	s.mcpServer.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks in insertion order, optionally filtered by a case-insensitive substring."),
		mcp.WithString("query", mcp.Description("Search term (optional)")),
		mcp.WithOutputSchema[view.Model](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Flip a task between pending and completed."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithOutputSchema[TaskResponse](),
	), mcp.NewStructuredToolHandler(s.handleToggle))

	s.mcpServer.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete one task."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithOutputSchema[DeleteResponse](),
	), mcp.NewStructuredToolHandler(s.handleDelete))

	s.mcpServer.AddTool(mcp.NewTool("clear_completed",
		mcp.WithDescription("Delete every completed task."),
		mcp.WithOutputSchema[ClearResponse](),
	), mcp.NewStructuredToolHandler(s.handleClearCompleted))

	s.mcpServer.AddTool(mcp.NewTool("clear_all",
		mcp.WithDescription("Delete every task. Requires confirm=true."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true; confirms the user agreed to delete everything")),
		mcp.WithOutputSchema[ClearResponse](),
	), mcp.NewStructuredToolHandler(s.handleClearAll))
}

func (s *Server) handleAdd(ctx context.Context, request mcp.CallToolRequest, args AddArgs) (TaskResponse, error) {
	text, err := runner.SanitizeInput(args.Text)
	if err != nil {
		slog.Warn("MCP add_task: Input rejected", "err", err, "size", len(args.Text))
		return TaskResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.session.Create(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return TaskResponse{}, errors.New(tasklist.NoticeEmptyText)
		}
		return TaskResponse{}, err
	}
	return TaskResponse{Task: t.Serialize(), Counts: s.session.Count()}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args ListArgs) (view.Model, error) {
	return s.model(args.Query), nil
}

func (s *Server) handleToggle(ctx context.Context, request mcp.CallToolRequest, args IDArgs) (TaskResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Toggle(ctx, args.ID) {
		return TaskResponse{}, fmt.Errorf("no task with id %d", args.ID)
	}
	t, _ := s.session.Get(args.ID)
	return TaskResponse{Task: t.Serialize(), Counts: s.session.Count()}, nil
}

func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest, args IDArgs) (DeleteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.session.Get(args.ID); !ok {
		return DeleteResponse{}, fmt.Errorf("no task with id %d", args.ID)
	}
	deleted := s.session.Remove(ctx, args.ID)
	return DeleteResponse{Deleted: deleted, Counts: s.session.Count()}, nil
}

func (s *Server) handleClearCompleted(ctx context.Context, request mcp.CallToolRequest, args struct{}) (ClearResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.session.ClearCompleted(ctx)
	return ClearResponse{Removed: n, Counts: s.session.Count()}, nil
}

func (s *Server) handleClearAll(ctx context.Context, request mcp.CallToolRequest, args ClearAllArgs) (ClearResponse, error) {
	if !args.Confirm {
		return ClearResponse{}, ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.session.Count().Total
	if !s.session.ClearAll(ctx) {
		n = 0
	}
	return ClearResponse{Removed: n, Counts: s.session.Count()}, nil
}

func (s *Server) model(term string) view.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Build(domain.Filter(s.session.Tasks(), term), s.session.Count(), term)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ResourceURI, "Task List",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.model(""))
		if err != nil {
			return nil, fmt.Errorf("failed to encode tasks: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
