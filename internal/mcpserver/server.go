// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the vault engine as tools, a prompt and resources via
// stdio transport.
package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/vaultboot/internal/apperr"
	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/report"
	"github.com/starford/vaultboot/internal/vault"
)

// Name and Version identify the server to MCP clients.
const (
	Name    = "vaultboot"
	Version = "1.0.0"
)

// DefaultHistoryLimit is used when list_vaults is called without a limit.
const DefaultHistoryLimit = 20

// VaultService is the subset of the vault engine the tools call.
type VaultService interface {
	Templates() []catalog.Template
	DefaultParent() string
	Create(ctx context.Context, req vault.CreateRequest) (*vault.Created, error)
	Adopt(ctx context.Context, req vault.AdoptRequest) (*vault.Adopted, error)
	Analyze(ctx context.Context, url string) (*vault.Inspection, error)
	History(ctx context.Context, limit int) ([]models.VaultRecord, error)
}

// Server wraps the MCP server with vault tools.
type Server struct {
	mcp *server.MCPServer
	svc VaultService
}

// New creates a new MCP server with all vault tools registered.
func New(svc VaultService) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_vault",
		mcp.WithDescription("Create a new Obsidian vault from a template with folders, "+
			"starter notes, configuration and community plugins."),
		mcp.WithString("template", mcp.Required(), mcp.Description("Template key (see list_templates)")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Vault name, used as the directory name")),
		mcp.WithString("path", mcp.Description("Parent directory (default: "+vault.DefaultParent+")")),
	), s.createVault)

	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the available vault templates with their folders and features."),
	), s.listTemplates)

	s.mcp.AddTool(mcp.NewTool("analyze_config",
		mcp.WithDescription("Fetch an external vault configuration and report its plugins, "+
			"themes, snippets, hotkeys, detected workflows and recommendations."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Git URL of a vault or vault-config repository")),
	), s.analyzeConfig)

	s.mcp.AddTool(mcp.NewTool("adopt_config",
		mcp.WithDescription("Create a vault that adopts an external configuration merged over a base template."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Git URL of the configuration to adopt")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Vault name, used as the directory name")),
		mcp.WithString("path", mcp.Description("Parent directory (default: "+vault.DefaultParent+")")),
		mcp.WithString("baseTemplate", mcp.Description("Template for folders and notes (default: "+catalog.DefaultTemplate+")")),
	), s.adoptConfig)

	s.mcp.AddTool(mcp.NewTool("list_vaults",
		mcp.WithDescription("List previously created vaults, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of vaults to list")),
	), s.listVaults)

	s.mcp.AddPrompt(mcp.NewPrompt("bootstrap_vault",
		mcp.WithPromptDescription("Interactive wizard for creating a new Obsidian vault."),
		mcp.WithArgument("location", mcp.ArgumentDescription("Where to create the vault")),
	), s.bootstrapVault)

	s.mcp.AddResource(
		mcp.NewResource("vaultboot://templates", "Vault Templates",
			mcp.WithResourceDescription("Available vault templates in Markdown."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTemplatesResource,
	)

	s.mcp.AddResource(
		mcp.NewResource("vaultboot://layout", "Vault Layout",
			mcp.WithResourceDescription("Files and directories written into every created vault."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLayoutResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tpl, err := req.RequireString("template")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	created, err := s.svc.Create(ctx, vault.CreateRequest{
		Template: tpl,
		Name:     name,
		Path:     req.GetString("path", ""),
	})
	if err != nil {
		return toolError(err), nil
	}
	return textResult(report.Created(created))
}

func (s *Server) listTemplates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(report.Templates(s.svc.Templates()))
}

func (s *Server) analyzeConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in, err := s.svc.Analyze(ctx, url)
	if err != nil {
		return toolError(err), nil
	}
	return textResult(report.Analysis(in))
}

func (s *Server) adoptConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	adopted, err := s.svc.Adopt(ctx, vault.AdoptRequest{
		URL:          url,
		Name:         name,
		Path:         req.GetString("path", ""),
		BaseTemplate: req.GetString("baseTemplate", catalog.DefaultTemplate),
	})
	if err != nil {
		return toolError(err), nil
	}
	return textResult(report.Adopted(adopted))
}

func (s *Server) listVaults(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", DefaultHistoryLimit)
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := s.svc.History(ctx, limit)
	if err != nil {
		return toolError(err), nil
	}
	return textResult(report.History(records))
}

func (s *Server) bootstrapVault(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	location := req.Params.Arguments["location"]
	if location == "" {
		location = s.svc.DefaultParent()
	}
	text, err := report.Bootstrap(location, s.svc.Templates())
	if err != nil {
		return nil, err
	}
	return mcp.NewGetPromptResult(
		"Obsidian vault bootstrap wizard",
		[]mcp.PromptMessage{mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(text))},
	), nil
}

func (s *Server) readTemplatesResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := report.Templates(s.svc.Templates())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "text/markdown", Text: text},
	}, nil
}

func (s *Server) readLayoutResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "text/markdown", Text: VaultLayout},
	}, nil
}

func textResult(text string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// toolError maps an engine error to the message shown to the client.
func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperr.ErrRetrievalFailed):
		return mcp.NewToolResultError(fmt.Sprintf("Error fetching config: %v", err))
	case errors.Is(err, apperr.ErrTargetAlreadyExists):
		return mcp.NewToolResultError(fmt.Sprintf("Error: vault directory already exists (%v)", err))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}
}
