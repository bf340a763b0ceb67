package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fable/pkg/book"
	"fable/pkg/diff"
	"fable/pkg/schema"
	"fable/pkg/utils"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
)

const (
	// stateWindowRunes bounds how much chapter text the update call sees.
	stateWindowRunes = 2000
	// maxStateLen caps a stored state; longer answers truncate to 197+"...".
	maxStateLen = 200
	// minStateLen rejects throwaway answers like "ok" or "none".
	minStateLen = 5
	// nameSimilarity is the floor for fuzzy-matching a returned name onto a
	// known character.
	nameSimilarity = 0.85
)

// updateCharacterStates asks the model where each character stands after the
// chapter and applies the acceptable answers. Any failure keeps every state
// exactly as it was.
func (e *Engine) updateCharacterStates(ctx context.Context, m *book.Memory, chapterText string) {
	names := m.CharacterNames()
	if len(names) == 0 {
		return
	}
	before := m.CharacterStates()

	updates, err := e.requestStateUpdates(ctx, chapterText, names)
	if err != nil {
		log.Warn("character state update failed, keeping previous states", "error", err)
		return
	}

	if applyStateUpdates(m, updates) > 0 {
		for _, c := range diff.States(before, m.CharacterStates()) {
			log.Info("character state updated", "name", c.Name, "diff", c.Render())
		}
	}
}

func (e *Engine) requestStateUpdates(ctx context.Context, chapterText string, names []string) ([]schema.CharacterUpdate, error) {
	params := &openai.ChatCompletionNewParams{
		ResponseFormat:      schema.UpdatesResponseFormat(),
		MaxCompletionTokens: openai.Int(2048),
		Temperature:         openai.Float(0.3),
	}
	window := tailOf(chapterText, stateWindowRunes)
	raw, err := e.inf.Complete(ctx, params, updatesSystem, buildUpdatesPrompt(window, names))
	if err != nil {
		return nil, err
	}
	var out schema.CharacterUpdates
	if err := json.Unmarshal([]byte(utils.CleanJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse state updates: %w", err)
	}
	return out.Updates, nil
}

// applyStateUpdates maps returned names onto known characters and applies
// states that pass the length rules. Reports how many states changed.
func applyStateUpdates(m *book.Memory, updates []schema.CharacterUpdate) int {
	changed := 0
	for _, u := range updates {
		state := strings.TrimSpace(u.State)
		if len(state) <= minStateLen {
			continue
		}
		name := matchName(m, strings.TrimSpace(u.Name))
		if name == "" {
			continue
		}
		if len(state) > maxStateLen {
			state = utils.LimitStr(state, maxStateLen-3)
		}
		if m.Characters[name].CurrentState == state {
			continue
		}
		if err := m.SetCharacterState(name, state); err != nil {
			continue
		}
		changed++
	}
	return changed
}

// matchName resolves a model-returned name to a known character: exact
// first, then case-insensitive, then fuzzy to absorb spelling drift. Returns
// "" when nothing is close enough.
func matchName(m *book.Memory, name string) string {
	if name == "" {
		return ""
	}
	if _, ok := m.Characters[name]; ok {
		return name
	}
	for known := range m.Characters {
		if strings.EqualFold(known, name) {
			return known
		}
	}
	best, bestScore := "", 0.0
	for known := range m.Characters {
		if s := utils.Similarity(known, name); s > bestScore {
			best, bestScore = known, s
		}
	}
	if bestScore >= nameSimilarity {
		return best
	}
	return ""
}
