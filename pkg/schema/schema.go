package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	OutlineSchema          = generateSchema[OutlineDraft]()
	CharacterUpdatesSchema = generateSchema[CharacterUpdates]()
)

// OutlineResponseFormat constrains generation to the full outline shape.
func OutlineResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "book_outline",
		Description: openai.String("Complete outline for a book: world, characters, and chapter plan"),
		Schema:      OutlineSchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}

// UpdatesResponseFormat constrains generation to the character update shape.
func UpdatesResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "character_updates",
		Description: openai.String("Updated character situations after a finished chapter"),
		Schema:      CharacterUpdatesSchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
