package styles

// DefaultID is the preset used when a project names none.
const DefaultID = "balanced_neutral"

var presets = map[string]Profile{
	"balanced_neutral": {
		ID:          "balanced_neutral",
		Name:        "Balanced Neutral",
		Description: "A steady general-fiction voice that defers to the chosen author styles.",
		Dimensions: Dimensions{
			ProseComplexity:  "moderate",
			NarrativeDensity: "moderate",
			DescriptionLevel: "moderate",
			ThematicDepth:    "moderate",
			DialogueStyle:    "natural",
		},
	},
	"thriller_fast": {
		ID:          "thriller_fast",
		Name:        "Fast Thriller",
		Description: "Lean, propulsive prose built around momentum and short scenes.",
		Dimensions: Dimensions{
			ProseComplexity:  "simple",
			NarrativeDensity: "fast_paced",
			DescriptionLevel: "minimal",
			ThematicDepth:    "surface",
			DialogueStyle:    "natural",
		},
		SpecialInstructions: []string{
			"End most scenes on an unresolved beat.",
			"Prefer concrete verbs over adverbs.",
		},
		Avoid: []string{"long weather descriptions", "info-dump backstory"},
	},
	"fantasy_epic": {
		ID:          "fantasy_epic",
		Name:        "Epic Fantasy",
		Description: "Sweeping secondary-world narration with rich texture and mythic weight.",
		Dimensions: Dimensions{
			ProseComplexity:  "complex",
			NarrativeDensity: "epic",
			DescriptionLevel: "immersive",
			ThematicDepth:    "deep",
			DialogueStyle:    "formal",
		},
		SpecialInstructions: []string{
			"Treat the world's history as felt weight, not exposition.",
		},
	},
	"romance_contemporary": {
		ID:          "romance_contemporary",
		Name:        "Contemporary Romance",
		Description: "Warm, character-forward prose centered on emotional beats.",
		Dimensions: Dimensions{
			ProseComplexity:  "moderate",
			NarrativeDensity: "moderate",
			DescriptionLevel: "moderate",
			ThematicDepth:    "moderate",
			DialogueStyle:    "natural",
		},
		SpecialInstructions: []string{
			"Track physical and emotional proximity between leads in every scene.",
		},
		Avoid: []string{"cynicism about the central relationship"},
	},
	"horror_atmospheric": {
		ID:          "horror_atmospheric",
		Name:        "Atmospheric Horror",
		Description: "Slow-burn dread built from sensory detail and restraint.",
		Dimensions: Dimensions{
			ProseComplexity:  "moderate",
			NarrativeDensity: "contemplative",
			DescriptionLevel: "immersive",
			ThematicDepth:    "deep",
			DialogueStyle:    "sparse",
		},
		SpecialInstructions: []string{
			"Withhold the source of the threat as long as possible.",
			"Let ordinary objects carry menace.",
		},
		Avoid: []string{"gore as a substitute for dread", "jump-scare punctuation"},
	},
	"literary_experimental": {
		ID:          "literary_experimental",
		Name:        "Literary Experimental",
		Description: "Form-forward literary fiction that bends structure and syntax.",
		Dimensions: Dimensions{
			ProseComplexity:  "experimental",
			NarrativeDensity: "contemplative",
			DescriptionLevel: "rich",
			ThematicDepth:    "philosophical",
			DialogueStyle:    "stylized",
		},
	},
	"mystery_classic": {
		ID:          "mystery_classic",
		Name:        "Classic Mystery",
		Description: "Fair-play puzzle narration with clean clue placement.",
		Dimensions: Dimensions{
			ProseComplexity:  "moderate",
			NarrativeDensity: "moderate",
			DescriptionLevel: "moderate",
			ThematicDepth:    "surface",
			DialogueStyle:    "formal",
		},
		SpecialInstructions: []string{
			"Every clue the detective uses must appear on the page before the reveal.",
		},
	},
	"scifi_hard": {
		ID:          "scifi_hard",
		Name:        "Hard Science Fiction",
		Description: "Idea-driven narration where the mechanics of the world hold up to scrutiny.",
		Dimensions: Dimensions{
			ProseComplexity:  "complex",
			NarrativeDensity: "moderate",
			DescriptionLevel: "rich",
			ThematicDepth:    "philosophical",
			DialogueStyle:    "natural",
		},
		SpecialInstructions: []string{
			"Keep the physics consistent; consequences follow from stated rules.",
		},
		Avoid: []string{"technobabble that substitutes for mechanism"},
	},
}
