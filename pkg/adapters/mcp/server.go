package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/internal/presentation/graph"
	"github.com/aretw0/dfakit/internal/runtime"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AutomataURI is the resource listing stored automata.
const AutomataURI = "dfakit://automata"

// Engine defines what the MCP server needs from the dfakit core.
type Engine interface {
	Load(ctx context.Context, r io.Reader) (*domain.Automaton, error)
	Run(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error)
	Store() ports.AutomatonStore
}

var _ Engine = (*dfakit.Engine)(nil)

// SimulateArgs are the arguments of the simulate tool.
type SimulateArgs struct {
	Descriptor string `json:"descriptor"`
	Input      string `json:"input"`
}

// SimulateStoredArgs are the arguments of the simulate_stored tool.
type SimulateStoredArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

// SimulateResponse is the structured verdict returned by both simulate tools.
type SimulateResponse struct {
	Verdict  domain.Verdict         `json:"verdict" jsonschema_description:"accepted or rejected"`
	Status   domain.ExecutionStatus `json:"status" jsonschema_description:"How the run halted: accepted, rejected or stuck"`
	State    string                 `json:"state" jsonschema_description:"Last state reached"`
	Consumed int                    `json:"consumed" jsonschema_description:"Symbols consumed before halting"`
	Path     []string               `json:"path" jsonschema_description:"Visited states, starting with the initial state"`
	Symbol   string                 `json:"symbol,omitempty" jsonschema_description:"Symbol without a transition when stuck"`
}

func newSimulateResponse(res *domain.Result) SimulateResponse {
	return SimulateResponse{
		Verdict:  res.Verdict,
		Status:   res.Status,
		State:    res.State,
		Consumed: res.Consumed,
		Path:     res.Path,
		Symbol:   res.Symbol,
	}
}

// Server wraps the dfakit Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("dfakit-mcp", strings.TrimSpace(dfakit.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Build a DFA from descriptor text and run one input string through it."),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description("Descriptor: states line, initial state line, final states line, then one from,symbol,to transition per line")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; each character is one symbol")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: simulate_stored
	storedTool := mcp.NewTool("simulate_stored",
		mcp.WithDescription("Run one input string through a stored DFA."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Stored automaton name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; each character is one symbol")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(storedTool, mcp.NewStructuredToolHandler(s.handleSimulateStored))

	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of stored automata."),
	), s.handleListAutomata)

	// TOOL: graph
	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Render a stored DFA as a Mermaid diagram, optionally highlighting the run of an input."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Stored automaton name")),
		mcp.WithString("input", mcp.Description("Input whose path is highlighted (optional)")),
	), s.handleGraph)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args SimulateArgs) (SimulateResponse, error) {
	a, err := s.engine.Load(ctx, strings.NewReader(args.Descriptor))
	if err != nil {
		s.logger.Warn("MCP simulate: descriptor rejected", "error", err)
		return SimulateResponse{}, fmt.Errorf("invalid descriptor: %w", err)
	}
	return s.run(ctx, a, args.Input)
}

func (s *Server) handleSimulateStored(ctx context.Context, request mcp.CallToolRequest, args SimulateStoredArgs) (SimulateResponse, error) {
	a, err := s.engine.Store().Load(ctx, args.Name)
	if err != nil {
		return SimulateResponse{}, err
	}
	return s.run(ctx, a, args.Input)
}

func (s *Server) run(ctx context.Context, a *domain.Automaton, input string) (SimulateResponse, error) {
	if err := runtime.CheckInput(input); err != nil {
		s.logger.Warn("MCP simulate: input rejected", "error", err, "size", len(input))
		return SimulateResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	res, err := s.engine.Run(ctx, a, input)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", err)
	}
	return newSimulateResponse(res), nil
}

func (s *Server) handleListAutomata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.Store().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if names == nil {
		names = []string{}
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, err := s.engine.Store().Load(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var overlay *graph.GraphOverlay
	if input := request.GetString("input", ""); input != "" {
		if err := runtime.CheckInput(input); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
		}
		res, err := s.engine.Run(ctx, a, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("simulation failed: %v", err)), nil
		}
		overlay = graph.OverlayFromResult(res)
	}

	return mcp.NewToolResultText(graph.GenerateMermaid(a, overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: dfakit://automata
	s.mcpServer.AddResource(mcp.NewResource(AutomataURI, "Stored Automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Store().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      AutomataURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
