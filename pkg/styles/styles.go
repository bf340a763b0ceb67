// Package styles defines the writing-style catalog: five tunable dimensions,
// a set of named presets, and the prompt directives they expand into.
package styles

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Dimensions holds one option per style axis. Empty values fall back to
// "moderate" when directives are rendered.
type Dimensions struct {
	ProseComplexity  string `json:"prose_complexity"`
	NarrativeDensity string `json:"narrative_density"`
	DescriptionLevel string `json:"description_level"`
	ThematicDepth    string `json:"thematic_depth"`
	DialogueStyle    string `json:"dialogue_style"`
}

type Profile struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Dimensions          Dimensions `json:"dimensions"`
	SpecialInstructions []string   `json:"special_instructions,omitempty"`
	Avoid               []string   `json:"avoid,omitempty"`
}

// Options lists the accepted values per dimension.
var Options = map[string][]string{
	"prose_complexity":  {"simple", "moderate", "complex", "experimental"},
	"narrative_density": {"fast_paced", "moderate", "contemplative", "epic"},
	"description_level": {"minimal", "moderate", "rich", "immersive"},
	"thematic_depth":    {"surface", "moderate", "deep", "philosophical"},
	"dialogue_style":    {"natural", "formal", "stylized", "sparse"},
}

// defaultDims backs any dimension a profile leaves blank.
var defaultDims = Dimensions{
	ProseComplexity:  "moderate",
	NarrativeDensity: "moderate",
	DescriptionLevel: "moderate",
	ThematicDepth:    "moderate",
	DialogueStyle:    "natural",
}

var directives = map[string]map[string]string{
	"prose_complexity": {
		"simple":       "Write clear, direct prose with accessible vocabulary and short sentences.",
		"moderate":     "Balance readable prose with occasional elaborate constructions.",
		"complex":      "Use layered sentences, precise vocabulary, and varied rhythm.",
		"experimental": "Take risks with syntax, fragment structure, and unconventional phrasing where it serves the story.",
	},
	"narrative_density": {
		"fast_paced":    "Keep events moving; favor action and consequence over rumination.",
		"moderate":      "Alternate momentum with quieter beats at a steady pace.",
		"contemplative": "Let scenes breathe; dwell on interiority and implication.",
		"epic":          "Give events weight and scope; let the narrative sprawl where the stakes demand it.",
	},
	"description_level": {
		"minimal":   "Describe only what the scene strictly needs.",
		"moderate":  "Ground each scene with a few concrete sensory details.",
		"rich":      "Render settings and characters with generous sensory detail.",
		"immersive": "Saturate scenes with texture, atmosphere, and physical specificity.",
	},
	"thematic_depth": {
		"surface":       "Keep themes implicit; never editorialize.",
		"moderate":      "Let themes surface naturally through character choices.",
		"deep":          "Weave recurring motifs and moral tension through the narrative.",
		"philosophical": "Engage ideas directly; characters may wrestle with questions on the page.",
	},
	"dialogue_style": {
		"natural":  "Write dialogue the way people actually speak, interruptions and all.",
		"formal":   "Keep dialogue composed and grammatical, suited to the period or register.",
		"stylized": "Give dialogue a heightened, distinctive cadence.",
		"sparse":   "Use dialogue sparingly; let silence and action carry exchanges.",
	},
}

// Lookup returns the preset registered under id.
func Lookup(id string) (Profile, bool) {
	p, ok := presets[id]
	return p, ok
}

func Default() Profile {
	return presets[DefaultID]
}

// IDs returns all preset ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All returns the presets sorted by id, for catalog listings.
func All() []Profile {
	out := make([]Profile, 0, len(presets))
	for _, id := range IDs() {
		out = append(out, presets[id])
	}
	return out
}

func (d Dimensions) value(name string) string {
	switch name {
	case "prose_complexity":
		return d.ProseComplexity
	case "narrative_density":
		return d.NarrativeDensity
	case "description_level":
		return d.DescriptionLevel
	case "thematic_depth":
		return d.ThematicDepth
	case "dialogue_style":
		return d.DialogueStyle
	}
	return ""
}

// With returns a copy of p with the named dimensions overridden. Unknown
// dimensions or values are rejected.
func (p Profile) With(overrides map[string]string) (Profile, error) {
	for name, value := range overrides {
		opts, ok := Options[name]
		if !ok {
			return p, fmt.Errorf("unknown style dimension %q", name)
		}
		if !slices.Contains(opts, value) {
			return p, fmt.Errorf("invalid value %q for %s (want one of %s)", value, name, strings.Join(opts, ", "))
		}
		switch name {
		case "prose_complexity":
			p.Dimensions.ProseComplexity = value
		case "narrative_density":
			p.Dimensions.NarrativeDensity = value
		case "description_level":
			p.Dimensions.DescriptionLevel = value
		case "thematic_depth":
			p.Dimensions.ThematicDepth = value
		case "dialogue_style":
			p.Dimensions.DialogueStyle = value
		}
	}
	return p, nil
}

// Directives renders the profile as prompt instruction lines.
func (p Profile) Directives() []string {
	names := []string{"prose_complexity", "narrative_density", "description_level", "thematic_depth", "dialogue_style"}
	out := make([]string, 0, len(names)+len(p.SpecialInstructions)+1)
	for _, name := range names {
		v := cmp.Or(p.Dimensions.value(name), defaultDims.value(name))
		if text, ok := directives[name][v]; ok {
			out = append(out, text)
		}
	}
	out = append(out, p.SpecialInstructions...)
	if len(p.Avoid) > 0 {
		out = append(out, "Avoid: "+strings.Join(p.Avoid, "; ")+".")
	}
	return out
}

// WordBand returns the target words-per-page range for the profile's pacing.
func (p Profile) WordBand() (lo, hi int) {
	switch p.Dimensions.NarrativeDensity {
	case "fast_paced":
		return 350, 450
	case "contemplative", "epic":
		return 500, 650
	default:
		return 400, 550
	}
}
