package mcptools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dusk-indust/horizon/internal/horizon"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HorizonService holds the record index used by MCP tool handlers.
type HorizonService struct {
	index  *horizon.Index[Key]
	logger *slog.Logger
}

// NewHorizonService creates a HorizonService over an index. A nil logger
// discards logs.
func NewHorizonService(index *horizon.Index[Key], logger *slog.Logger) *HorizonService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HorizonService{index: index, logger: logger}
}

// CountChildren returns the number of direct children of a record. Unknown
// ids count zero children.
func (s *HorizonService) CountChildren(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RecordInput,
) (*mcp.CallToolResult, CountChildrenOutput, error) {
	return nil, CountChildrenOutput{
		ID:    input.ID,
		Count: s.index.CountChildren(input.ID),
	}, nil
}

// GetChildren returns the direct children of a record in input order.
func (s *HorizonService) GetChildren(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RecordInput,
) (*mcp.CallToolResult, GetChildrenOutput, error) {
	return nil, GetChildrenOutput{
		ID:       input.ID,
		Children: s.index.Children(input.ID),
	}, nil
}

// GetParent returns the parent key of a record.
func (s *HorizonService) GetParent(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RecordInput,
) (*mcp.CallToolResult, GetParentOutput, error) {
	parent, ok, err := s.index.Parent(input.ID)
	if err != nil {
		s.logger.Debug("get_parent failed", "id", input.ID, "err", err)
		return nil, GetParentOutput{}, fmt.Errorf("get parent: %w", err)
	}
	out := GetParentOutput{ID: input.ID}
	if ok {
		out.ParentID = &parent
	}
	return nil, out, nil
}

// GetView assembles the horizon view around a record.
func (s *HorizonService) GetView(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetViewInput,
) (*mcp.CallToolResult, GetViewOutput, error) {
	limits := s.index.Limits()
	if input.MaxAncestorLevel != nil {
		if *input.MaxAncestorLevel < 0 {
			return nil, GetViewOutput{}, fmt.Errorf("maxAncestorLevel must not be negative")
		}
		limits.MaxAncestorLevel = *input.MaxAncestorLevel
	}
	if input.MaxDescendantLevel != nil {
		if *input.MaxDescendantLevel < 0 {
			return nil, GetViewOutput{}, fmt.Errorf("maxDescendantLevel must not be negative")
		}
		limits.MaxDescendantLevel = *input.MaxDescendantLevel
	}

	v, err := s.index.ViewWithLimits(input.ID, limits)
	if err != nil {
		s.logger.Debug("get_view failed", "id", input.ID, "err", err)
		return nil, GetViewOutput{}, fmt.Errorf("get view: %w", err)
	}

	truncated := v.Truncated
	if truncated == nil {
		truncated = []Key{}
	}
	return nil, GetViewOutput{
		Nodes:     v.Nodes,
		Edges:     v.Edges,
		Truncated: truncated,
	}, nil
}

// GetStats summarizes the served index.
func (s *HorizonService) GetStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetStatsInput,
) (*mcp.CallToolResult, GetStatsOutput, error) {
	return nil, GetStatsOutput{
		Stats:  s.index.Stats(),
		Limits: s.index.Limits(),
	}, nil
}
