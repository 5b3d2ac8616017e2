package game

import (
	"fmt"

	"github.com/vovakirdan/stacks-roll/internal/config"
)

type spawnEntry struct {
	kind       Kind
	cumulative float64
	rule       config.SpawnRule
}

// SpawnTable is a weighted choice over entity kinds consulted with a single
// uniform draw. Entries keep their configured order, so the cumulative
// thresholds for the default weights are 0.05, 0.25, 0.60, 0.80, 1.0.
type SpawnTable struct {
	entries []spawnEntry
	total   float64
}

// NewSpawnTable builds a table from config rules.
func NewSpawnTable(rules []config.SpawnRule) (*SpawnTable, error) {
	t := &SpawnTable{entries: make([]spawnEntry, 0, len(rules))}

	for _, r := range rules {
		kind, err := ParseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("game: negative spawn weight for %s", kind)
		}
		if r.Weight == 0 {
			continue
		}
		t.total += r.Weight
		t.entries = append(t.entries, spawnEntry{kind: kind, cumulative: t.total, rule: r})
	}

	if t.total <= 0 {
		return nil, fmt.Errorf("game: spawn table has no weight")
	}
	return t, nil
}

// Pick returns the kind selected by u in [0, 1) and its placement rule.
func (t *SpawnTable) Pick(u float64) (Kind, config.SpawnRule) {
	threshold := u * t.total
	for _, e := range t.entries {
		if threshold < e.cumulative {
			return e.kind, e.rule
		}
	}
	// u == 1 or rounding at the top end
	last := t.entries[len(t.entries)-1]
	return last.kind, last.rule
}

// Probability returns the share of spawns that will be of kind k.
func (t *SpawnTable) Probability(k Kind) float64 {
	prev := 0.0
	for _, e := range t.entries {
		if e.kind == k {
			return (e.cumulative - prev) / t.total
		}
		prev = e.cumulative
	}
	return 0
}
