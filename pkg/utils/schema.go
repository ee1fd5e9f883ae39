package utils

import (
	"encoding/json"
	"sort"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

type SchemaType string

const (
	SchemaArray   SchemaType = "array"
	SchemaObject  SchemaType = "object"
	SchemaString  SchemaType = "string"
	SchemaInteger SchemaType = "integer"
)

// ResponseSchema is a backend neutral description of the JSON a model must
// return. Each client converts it into its own schema dialect.
type ResponseSchema struct {
	Type       SchemaType
	Items      *ResponseSchema
	Properties map[string]*ResponseSchema
	Required   []string
}

func ArrayOf(items *ResponseSchema) *ResponseSchema {
	return &ResponseSchema{Type: SchemaArray, Items: items}
}

func StringSchema() *ResponseSchema { return &ResponseSchema{Type: SchemaString} }

func IntegerSchema() *ResponseSchema { return &ResponseSchema{Type: SchemaInteger} }

// ObjectOf builds an object schema where every property is required.
func ObjectOf(props map[string]*ResponseSchema) *ResponseSchema {
	return &ResponseSchema{Type: SchemaObject, Properties: props, Required: sortedKeys(props)}
}

func sortedKeys(props map[string]*ResponseSchema) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *ResponseSchema) toGenai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Required: s.Required}
	switch s.Type {
	case SchemaArray:
		out.Type = genai.TypeArray
	case SchemaObject:
		out.Type = genai.TypeObject
	case SchemaInteger:
		out.Type = genai.TypeInteger
	default:
		out.Type = genai.TypeString
	}
	out.Items = s.Items.toGenai()
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = p.toGenai()
		}
	}
	return out
}

// toOpenAI produces a strict-mode compatible definition: objects close their
// property set and list every property as required.
func (s *ResponseSchema) toOpenAI() jsonschema.Definition {
	if s == nil {
		return jsonschema.Definition{}
	}
	out := jsonschema.Definition{}
	switch s.Type {
	case SchemaArray:
		out.Type = jsonschema.Array
		items := s.Items.toOpenAI()
		out.Items = &items
	case SchemaObject:
		out.Type = jsonschema.Object
		out.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = p.toOpenAI()
		}
		out.Required = sortedKeys(s.Properties)
		out.AdditionalProperties = false
	case SchemaInteger:
		out.Type = jsonschema.Integer
	default:
		out.Type = jsonschema.String
	}
	return out
}

// toJSONSchema renders a plain JSON schema document, the format Ollama accepts.
func (s *ResponseSchema) toJSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Items != nil {
		out["items"] = s.Items.toJSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.toJSONSchema()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

func (s *ResponseSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSONSchema())
}
