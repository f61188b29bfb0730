package progression

import (
	"sort"
	"time"
)

// SanitizeOptions tunes server side re-validation of a client report.
type SanitizeOptions struct {
	// Slack tolerates actions stamped slightly after the reported duration.
	Slack time.Duration
	// MinGap is the minimum spacing between two XP-bearing actions of the
	// same type. Zero disables the check.
	MinGap time.Duration
	// Policy decides which action types are XP-bearing.
	Policy Policy
}

// Sanitize rebuilds a report from an untrusted client so it can be
// evaluated authoritatively. It drops unknown and derived action types,
// actions outside the session time range, duplicate level clears and,
// when MinGap is set, XP-bearing actions arriving faster than MinGap.
// It returns the cleaned report and the number of dropped actions.
func Sanitize(r SessionReport, opts SanitizeOptions) (SessionReport, int) {
	if r.DurationSeconds < 0 {
		r.DurationSeconds = 0
	}
	if r.Deaths < 0 {
		r.Deaths = 0
	}
	if opts.Policy.XP == nil {
		opts.Policy = DefaultPolicy()
	}

	limit := int64(r.DurationSeconds*1000) + opts.Slack.Milliseconds()
	kept := make([]GameAction, 0, len(r.Actions))
	for _, a := range r.Actions {
		if !a.Type.Known() || a.Type.Derived() {
			continue
		}
		if a.At < 0 || a.At > limit {
			continue
		}
		kept = append(kept, a)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].At < kept[j].At })

	gap := opts.MinGap.Milliseconds()
	last := make(map[ActionType]int64)
	cleared := false
	out := kept[:0]
	for _, a := range kept {
		if a.Type == ActionLevelCleared {
			if cleared {
				continue
			}
			cleared = true
		}
		if gap > 0 && opts.Policy.Value(a.Type) > 0 {
			if prev, ok := last[a.Type]; ok && a.At-prev < gap {
				continue
			}
			last[a.Type] = a.At
		}
		out = append(out, a)
	}

	dropped := len(r.Actions) - len(out)
	r.Actions = out
	return r, dropped
}
