package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/react-analyzer/internal/pipeline"
	"github.com/DeusData/react-analyzer/internal/report"
)

func (s *Server) handleAnalyzeProject(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}

	result, err := pipeline.Run(ctx, pipeline.Config{
		Root:    path,
		Pattern: getStringArg(args, "pattern"),
		Ignore:  getStringArg(args, "ignore"),
	})
	if err != nil {
		return errResult(fmt.Sprintf("analyze %s: %v", path, err)), nil
	}

	out := report.FromResult(result)
	if err := s.store.SaveReport(result.ProjectName, result.Root, out); err != nil {
		return errResult(fmt.Sprintf("save report: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"project":         result.ProjectName,
		"nodes":           len(result.Graph.Nodes),
		"edges":           len(result.Graph.Edges),
		"dead_files":      len(result.DeadFiles),
		"unknown_imports": len(result.UnknownImports),
		"summary":         out.Summary,
		"test_summary":    out.TestSummary,
		"duration":        result.Duration.String(),
	}), nil
}

func (s *Server) handleListProjects(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.store.ListProjects()
	if err != nil {
		return errResult(fmt.Sprintf("list projects: %v", err)), nil
	}

	type projectInfo struct {
		Name       string `json:"name"`
		RootPath   string `json:"root_path"`
		AnalyzedAt string `json:"analyzed_at"`
		Nodes      int    `json:"nodes"`
		Edges      int    `json:"edges"`
	}

	result := make([]projectInfo, 0, len(projects))
	for _, p := range projects {
		nc, _ := s.store.CountNodes(p.Name)
		ec, _ := s.store.CountEdges(p.Name)
		result = append(result, projectInfo{
			Name:       p.Name,
			RootPath:   p.RootPath,
			AnalyzedAt: p.AnalyzedAt,
			Nodes:      nc,
			Edges:      ec,
		})
	}
	return jsonResult(result), nil
}

func (s *Server) handleGetSummary(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, res := s.projectArg(req)
	if res != nil {
		return res, nil
	}
	summary, tests, err := s.store.GetSummary(project)
	if err != nil {
		return errResult(fmt.Sprintf("get summary: %v", err)), nil
	}
	return jsonResult(map[string]any{
		"summary":      summary,
		"test_summary": tests,
	}), nil
}

func (s *Server) handleListDeadFiles(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.findingsResult(req, "dead")
}

func (s *Server) handleListUnknownImports(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.findingsResult(req, "unknown")
}

func (s *Server) findingsResult(req *mcp.CallToolRequest, kind string) (*mcp.CallToolResult, error) {
	project, res := s.projectArg(req)
	if res != nil {
		return res, nil
	}
	paths, err := s.store.ListFindings(project, kind)
	if err != nil {
		return errResult(fmt.Sprintf("list %s findings: %v", kind, err)), nil
	}
	return jsonResult(paths), nil
}

func (s *Server) handleFileExports(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	project := getStringArg(args, "project")
	path := getStringArg(args, "path")
	if project == "" || path == "" {
		return errResult("project and path are required"), nil
	}
	exports, err := s.store.FileExports(project, path)
	if err != nil {
		return errResult(fmt.Sprintf("file exports: %v", err)), nil
	}
	return jsonResult(map[string]any{
		"source":  path,
		"exports": exports,
	}), nil
}

func (s *Server) handleDependencyUsage(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, res := s.projectArg(req)
	if res != nil {
		return res, nil
	}
	usage, err := s.store.DependencyUsage(project)
	if err != nil {
		return errResult(fmt.Sprintf("dependency usage: %v", err)), nil
	}
	return jsonResult(usage), nil
}

// projectArg extracts the required project argument, returning an error
// result when it is missing or malformed.
func (s *Server) projectArg(req *mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	args, err := parseArgs(req)
	if err != nil {
		return "", errResult(err.Error())
	}
	project := getStringArg(args, "project")
	if project == "" {
		return "", errResult("project is required")
	}
	return project, nil
}
