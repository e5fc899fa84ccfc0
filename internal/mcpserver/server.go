// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes burnote tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/burnote/internal/apperr"
	"github.com/starford/burnote/internal/auth"
	"github.com/starford/burnote/internal/noteservice"
)

const guideURI = "burnote://usage"

// Server wraps the MCP server with burnote tools. Every tool acts on behalf
// of a single tenant fixed at construction.
type Server struct {
	mcp    *server.MCPServer
	svc    *noteservice.Service
	tenant auth.Tenant
}

// New creates a new MCP server with all burnote tools registered.
func New(svc *noteservice.Service, tenant auth.Tenant) *Server {
	s := &Server{svc: svc, tenant: tenant}

	s.mcp = server.NewMCPServer(
		"burnote",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("save_note",
		mcp.WithDescription("Save a private note, or create a read-once share when share is true."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note text")),
		mcp.WithBoolean("share", mcp.Description("Create a read-once share instead of a private note")),
		mcp.WithString("public_id", mcp.Description("Share token; minted when omitted")),
	), s.saveNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List private notes, newest first."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a private note by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Numeric note id")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("read_share",
		mcp.WithDescription("Read a shared note. The share is destroyed by this call."),
		mcp.WithString("public_id", mcp.Required(), mcp.Description("Share token")),
	), s.readShare)

	s.mcp.AddTool(mcp.NewTool("summarize",
		mcp.WithDescription("Summarize text with the configured model."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to summarize")),
	), s.summarize)

	s.mcp.AddResource(
		mcp.NewResource(guideURI, "Usage Guide",
			mcp.WithResourceDescription("How private notes and read-once shares behave."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
	)

	return s
}

// ServeStdio serves MCP on stdin/stdout until ctx is done or input ends.
func (s *Server) ServeStdio(ctx context.Context) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) saveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := noteservice.SaveRequest{Content: content, IsShare: req.GetBool("share", false)}
	if in.IsShare {
		in.PublicID = req.GetString("public_id", "")
		if in.PublicID == "" {
			in.PublicID = uuid.NewString()
		}
	}

	if err := s.svc.SaveNote(ctx, s.tenant, in); err != nil {
		return toolError(err), nil
	}
	if in.IsShare {
		return mcp.NewToolResultText(fmt.Sprintf("shared: %s", in.PublicID)), nil
	}
	return mcp.NewToolResultText("saved"), nil
}

func (s *Server) listNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.ListNotes(ctx, s.tenant)
	if err != nil {
		return toolError(err), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if id != math.Trunc(id) || math.IsInf(id, 0) {
		return mcp.NewToolResultError(fmt.Sprintf("id must be a whole number, got %v", id)), nil
	}
	if err := s.svc.DeleteNote(ctx, s.tenant, int64(id)); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %d", int64(id))), nil
}

func (s *Server) readShare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	publicID, err := req.RequireString("public_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.svc.ReadShare(ctx, publicID)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) summarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	return mcp.NewToolResultText(s.svc.Summarize(ctx, text).Summary), nil
}

func (s *Server) readGuideResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      guideURI,
			MIMEType: "text/markdown",
			Text:     UsageGuide,
		},
	}, nil
}

// toolError renders err without leaking internal detail.
func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError("not found")
	case errors.Is(err, apperr.ErrAlreadyExists):
		return mcp.NewToolResultError("public_id already in use")
	case errors.Is(err, apperr.ErrInvalidInput), errors.Is(err, apperr.ErrBadConfiguration):
		return mcp.NewToolResultError(err.Error())
	default:
		return mcp.NewToolResultError("internal error")
	}
}
