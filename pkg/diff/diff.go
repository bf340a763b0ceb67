// Package diff renders word-level differences between character state
// snapshots so the logs show what a chapter changed for whom.
package diff

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"fable/pkg/utils"

	"github.com/aryann/difflib"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

type WordDelta struct {
	Op   Op
	Text string
}

type StringDiff struct {
	Old    string
	New    string
	Deltas []WordDelta
}

// StateChange is one character whose state moved between two snapshots.
type StateChange struct {
	Name string
	Str  StringDiff
}

// States compares two name→state snapshots and returns a change per
// character whose state differs, sorted by name. Characters present in only
// one snapshot diff against the empty string.
func States(oldS, newS map[string]string) []StateChange {
	keys := map[string]struct{}{}
	for name := range oldS {
		keys[name] = struct{}{}
	}
	for name := range newS {
		keys[name] = struct{}{}
	}

	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	slices.Sort(names)

	var out []StateChange
	for _, name := range names {
		o, n := oldS[name], newS[name]
		if o == n {
			continue
		}
		out = append(out, StateChange{Name: name, Str: strDiff(o, n)})
	}
	return out
}

func strDiff(a, b string) StringDiff {
	if a == b {
		return StringDiff{Old: a, New: b, Deltas: []WordDelta{{Op: Equal, Text: a}}}
	}
	at := utils.TokenizeWords(a)
	bt := utils.TokenizeWords(b)
	recs := difflib.Diff(at, bt)
	deltas := make([]WordDelta, 0, len(recs))
	for _, r := range recs {
		switch r.Delta {
		case difflib.Common:
			deltas = append(deltas, WordDelta{Op: Equal, Text: r.Payload})
		case difflib.LeftOnly:
			deltas = append(deltas, WordDelta{Op: Delete, Text: r.Payload})
		case difflib.RightOnly:
			deltas = append(deltas, WordDelta{Op: Insert, Text: r.Payload})
		}
	}
	return StringDiff{Old: a, New: b, Deltas: coalesceSpaces(deltas)}
}

func coalesceSpaces(in []WordDelta) []WordDelta {
	out := make([]WordDelta, 0, len(in))
	flush := func(op Op, buf *strings.Builder) {
		if buf.Len() == 0 {
			return
		}
		out = append(out, WordDelta{Op: op, Text: buf.String()})
		buf.Reset()
	}
	var curOp Op = -1
	var buf strings.Builder
	for _, d := range in {
		if strings.TrimSpace(d.Text) == "" && d.Op == Equal {
			buf.WriteString(d.Text)
			continue
		}
		if curOp != d.Op && curOp != -1 {
			flush(curOp, &buf)
		}
		if curOp != d.Op {
			curOp = d.Op
		}
		buf.WriteString(d.Text)
	}
	flush(curOp, &buf)
	return out
}

const (
	ansiReset = "\x1b[0m"
	fgGreen   = "\x1b[32m"
	fgRed     = "\x1b[31m"
	fgCyan    = "\x1b[36m"
	uline     = "\x1b[4m"
	strike    = "\x1b[9m"
)

func renderStringDiff(sd StringDiff) string {
	var b strings.Builder
	for _, d := range sd.Deltas {
		switch d.Op {
		case Equal:
			b.WriteString(d.Text)
		case Insert:
			fmt.Fprintf(&b, "%s%s%s%s", fgGreen, uline, d.Text, ansiReset)
		case Delete:
			fmt.Fprintf(&b, "%s%s%s%s", fgRed, strike, d.Text, ansiReset)
		}
	}
	return b.String()
}

// Render formats the change for a terminal, deletions struck out in red and
// additions underlined in green.
func (c StateChange) Render() string {
	return renderStringDiff(c.Str)
}

// Print writes the whole change set to w, one character per block.
func Print(w io.Writer, changes []StateChange) {
	if len(changes) == 0 {
		return
	}
	fmt.Fprintln(w, fgCyan+"Character states"+ansiReset)
	for _, c := range changes {
		fmt.Fprintf(w, "  %s: %s\n", c.Name, c.Render())
	}
}
