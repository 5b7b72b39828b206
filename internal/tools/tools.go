package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/react-analyzer/internal/store"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp   *mcp.Server
	store *store.Store
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(s *store.Store) *Server {
	srv := &Server{
		store: s,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "react-analyzer",
				Version: "0.1.0",
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	// 1. analyze_project
	s.mcp.AddTool(&mcp.Tool{
		Name:        "analyze_project",
		Description: "Analyze a JavaScript/TypeScript project: build its module import graph, detect dead files and unknown imports, aggregate per-file exports, and cross-reference package.json dependency usage. Results are stored for querying with the other tools.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Absolute path to the project root to analyze."
				},
				"pattern": {
					"type": "string",
					"description": "Regex selecting source files by root-relative path. Defaults to all supported extensions."
				},
				"ignore": {
					"type": "string",
					"description": "Regex excluding files by root-relative path."
				}
			},
			"required": ["path"]
		}`),
	}, s.handleAnalyzeProject)

	// 2. list_projects
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_projects",
		Description: "List all analyzed projects with their analyzed_at timestamp, root path, and node/edge counts.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleListProjects)

	// 3. get_summary
	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_summary",
		Description: "Return a project's stored analysis summary: total files, lines, imports, dead files, skipped files, plus test counts.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name as returned by list_projects."
				}
			},
			"required": ["project"]
		}`),
	}, s.handleGetSummary)

	// 4. list_dead_files
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_dead_files",
		Description: "List a project's dead files: source files on disk that no other file imports.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name as returned by list_projects."
				}
			},
			"required": ["project"]
		}`),
	}, s.handleListDeadFiles)

	// 5. list_unknown_imports
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_unknown_imports",
		Description: "List a project's unknown imports: specifiers that resolve to no real file and no declared dependency (typos, missing aliases, unsupported resolution cases).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name as returned by list_projects."
				}
			},
			"required": ["project"]
		}`),
	}, s.handleListUnknownImports)

	// 6. file_exports
	s.mcp.AddTool(&mcp.Tool{
		Name:        "file_exports",
		Description: "Return the export relations of one file: every binding it exports and which file imports it. The file is addressed by its canonical path (root-relative, extension stripped, e.g. 'src/App').",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name as returned by list_projects."
				},
				"path": {
					"type": "string",
					"description": "Canonical path of the file (e.g. 'src/components/Button')."
				}
			},
			"required": ["project", "path"]
		}`),
	}, s.handleFileExports)

	// 7. dependency_usage
	s.mcp.AddTool(&mcp.Tool{
		Name:        "dependency_usage",
		Description: "Return a project's declared package.json dependencies with the number of times each is actually imported. A count of 0 marks a dependency nothing imports.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name as returned by list_projects."
				}
			},
			"required": ["project"]
		}`),
	}, s.handleDependencyUsage)
}

// jsonResult marshals data as indented JSON into a tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
