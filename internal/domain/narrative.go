package domain

// SchemaType values follow JSON Schema spelling.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
)

// Schema is the subset of JSON Schema used to describe the generator's
// output contract. It marshals to a valid JSON Schema document.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// NarrativeRequest is handed to a NarrativeGenerator.
type NarrativeRequest struct {
	Prompt string
	Schema *Schema
}
