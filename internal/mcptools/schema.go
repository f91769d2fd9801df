package mcptools

import "github.com/google/jsonschema-go/jsonschema"

func objectSchema(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Required: required, Properties: props}
}

func arrayOf(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

func keySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer"}
}

func nullableKeySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"null", "integer"}}
}

// recordSchema describes a flat record. Caller fields are allowed.
func recordSchema() *jsonschema.Schema {
	return objectSchema([]string{"id", "parent_id", "title"}, map[string]*jsonschema.Schema{
		"id":        keySchema(),
		"parent_id": nullableKeySchema(),
		"title":     {Type: "string"},
	})
}

func nodeSchema() *jsonschema.Schema {
	s := recordSchema()
	s.Required = append(s.Required, "label")
	s.Properties["label"] = &jsonschema.Schema{Type: "string"}
	return s
}

func edgeSchema() *jsonschema.Schema {
	return objectSchema([]string{"from", "to"}, map[string]*jsonschema.Schema{
		"from": keySchema(),
		"to":   keySchema(),
	})
}

func countChildrenSchema() *jsonschema.Schema {
	return objectSchema([]string{"id", "count"}, map[string]*jsonschema.Schema{
		"id":    keySchema(),
		"count": {Type: "integer"},
	})
}

func getChildrenSchema() *jsonschema.Schema {
	return objectSchema([]string{"id", "children"}, map[string]*jsonschema.Schema{
		"id":       keySchema(),
		"children": arrayOf(recordSchema()),
	})
}

func getParentSchema() *jsonschema.Schema {
	return objectSchema([]string{"id", "parent_id"}, map[string]*jsonschema.Schema{
		"id":        keySchema(),
		"parent_id": nullableKeySchema(),
	})
}

func getViewSchema() *jsonschema.Schema {
	return objectSchema([]string{"nodes", "edges", "truncated"}, map[string]*jsonschema.Schema{
		"nodes":     arrayOf(nodeSchema()),
		"edges":     arrayOf(edgeSchema()),
		"truncated": arrayOf(keySchema()),
	})
}
