package schema

type CharacterUpdates struct {
	Updates []CharacterUpdate `json:"updates" jsonschema_description:"One entry per character whose situation changed in the chapter"`
}

type CharacterUpdate struct {
	Name  string `json:"name" jsonschema_description:"Character name exactly as listed in the prompt"`
	State string `json:"state" jsonschema_description:"The character's situation at the end of the chapter, in one or two sentences"`
}
