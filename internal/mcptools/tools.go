package mcptools

import "github.com/dusk-indust/horizon/internal/horizon"

// Key is the record key type served over MCP.
type Key = int64

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// RecordInput names one record.
type RecordInput struct {
	ID Key `json:"id" jsonschema:"id of the record"`
}

// GetViewInput is the input for the get_view MCP tool.
type GetViewInput struct {
	ID                 Key  `json:"id" jsonschema:"id of the center record"`
	MaxAncestorLevel   *int `json:"maxAncestorLevel,omitempty" jsonschema:"ancestor levels to include (default: server setting, usually 3)"`
	MaxDescendantLevel *int `json:"maxDescendantLevel,omitempty" jsonschema:"descendant levels to include (default: server setting, usually 3)"`
}

// GetStatsInput is the input for the get_stats MCP tool.
type GetStatsInput struct{}

// --- MCP Tool Output Types ---
// Records encode flat (caller fields next to id/parent_id/title), which the
// inferred schemas cannot express, so outputs carry hand-written schemas
// from schema.go.

// CountChildrenOutput is the result of the count_children MCP tool.
type CountChildrenOutput struct {
	ID    Key `json:"id"`
	Count int `json:"count"`
}

// GetChildrenOutput is the result of the get_children MCP tool.
type GetChildrenOutput struct {
	ID       Key                   `json:"id"`
	Children []horizon.Record[Key] `json:"children"`
}

// GetParentOutput is the result of the get_parent MCP tool. ParentID is nil
// for a root.
type GetParentOutput struct {
	ID       Key  `json:"id"`
	ParentID *Key `json:"parent_id"`
}

// GetViewOutput is the result of the get_view MCP tool: the renderer's
// {nodes, edges} document plus the ids of nodes cut off by the horizon.
type GetViewOutput struct {
	Nodes     []horizon.Node[Key] `json:"nodes"`
	Edges     []horizon.Edge[Key] `json:"edges"`
	Truncated []Key               `json:"truncated"`
}

// GetStatsOutput is the result of the get_stats MCP tool.
type GetStatsOutput struct {
	Stats  horizon.Stats  `json:"stats"`
	Limits horizon.Limits `json:"limits"`
}
