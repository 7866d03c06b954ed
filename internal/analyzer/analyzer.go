// Package analyzer derives hotkey descriptions, workflow patterns and
// recommendations from a vault configuration.
//
// Workflows and recommendations are ordered lists of independent rules;
// output order follows rule order.
package analyzer

import (
	"sort"
	"strings"

	"github.com/starford/vaultboot/internal/models"
)

// Source is the configuration view the analyzer reads. Both an ingested
// external config and a template's base config satisfy it.
type Source interface {
	HotkeyMap() map[string]any
	CommunityPluginIDs() []string
	CorePluginEnabled(id string) bool
}

// OrderedSource is a Source that knows the order its hotkeys were declared in.
type OrderedSource interface {
	Source
	HotkeyOrder() []string
}

// Facts is what rules are evaluated against.
type Facts struct {
	Hotkeys []models.HotkeyEntry
	plugins map[string]struct{}
	src     Source
}

// HasPlugin reports whether any of ids is an enabled community plugin.
func (f Facts) HasPlugin(ids ...string) bool {
	for _, id := range ids {
		if _, ok := f.plugins[id]; ok {
			return true
		}
	}
	return false
}

// CoreEnabled reports whether a core plugin is switched on.
func (f Facts) CoreEnabled(id string) bool {
	return f.src.CorePluginEnabled(id)
}

// Rule maps facts to zero or one output item.
type Rule[T any] func(Facts) (T, bool)

// Analyze evaluates the default rule sets against src.
func Analyze(src Source) models.Analysis {
	return AnalyzeWith(src, WorkflowRules, RecommendationRules)
}

// AnalyzeWith evaluates the given rule lists against src.
func AnalyzeWith(src Source, workflows []Rule[models.WorkflowPattern], recs []Rule[string]) models.Analysis {
	f := NewFacts(src)
	return models.Analysis{
		Hotkeys:         f.Hotkeys,
		Workflows:       evaluate(f, workflows),
		Recommendations: evaluate(f, recs),
	}
}

// NewFacts precomputes the facts for src.
func NewFacts(src Source) Facts {
	ids := src.CommunityPluginIDs()
	plugins := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		plugins[id] = struct{}{}
	}
	var order []string
	if o, ok := src.(OrderedSource); ok {
		order = o.HotkeyOrder()
	}
	return Facts{
		Hotkeys: Hotkeys(src.HotkeyMap(), order),
		plugins: plugins,
		src:     src,
	}
}

func evaluate[T any](f Facts, rules []Rule[T]) []T {
	out := make([]T, 0, len(rules))
	for _, r := range rules {
		if item, ok := r(f); ok {
			out = append(out, item)
		}
	}
	return out
}

// Hotkeys describes every bound command. Commands named in order come
// first, in that order; the rest follow sorted by command id. Only the first
// binding of a command is used; commands with no usable binding are skipped.
func Hotkeys(m map[string]any, order []string) []models.HotkeyEntry {
	out := make([]models.HotkeyEntry, 0, len(m))
	seen := make(map[string]bool, len(m))
	add := func(command string) {
		seen[command] = true
		keys, ok := firstBinding(m[command])
		if !ok {
			return
		}
		out = append(out, models.HotkeyEntry{
			Command:     command,
			Keys:        keys,
			Description: Describe(command),
		})
	}

	for _, command := range order {
		if _, ok := m[command]; ok && !seen[command] {
			add(command)
		}
	}
	rest := make([]string, 0, len(m)-len(seen))
	for command := range m {
		if !seen[command] {
			rest = append(rest, command)
		}
	}
	sort.Strings(rest)
	for _, command := range rest {
		add(command)
	}
	return out
}

// Describe turns a command id such as "editor:toggle-bold" into
// "editor toggle bold".
func Describe(command string) string {
	spaced := strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', '_':
			return ' '
		}
		return r
	}, command)
	return strings.Join(strings.Fields(spaced), " ")
}

func firstBinding(v any) (string, bool) {
	bindings, ok := v.([]any)
	if !ok || len(bindings) == 0 {
		return "", false
	}
	b, ok := bindings[0].(map[string]any)
	if !ok {
		return "", false
	}

	var tokens []string
	if mods, ok := b["modifiers"].([]any); ok {
		for _, m := range mods {
			if s, ok := m.(string); ok && s != "" {
				tokens = append(tokens, s)
			}
		}
	}
	if key, ok := b["key"].(string); ok && key != "" {
		tokens = append(tokens, key)
	}
	if len(tokens) == 0 {
		return "", false
	}
	return strings.Join(tokens, "+"), true
}
