package occupancy

import "time"

// Representative is the single assignment chosen to describe a target's
// current state. Active tells callers whether it was an active pick or just
// the latest historical record carried for its metadata: a latest-only
// representative does not mean the target is occupied.
type Representative struct {
	Record Record
	Active bool
}

// Reconcile groups assignments by target and picks one representative per
// target. An assignment satisfying IsActive wins; well-formed data has at
// most one, but overlapping actives do occur and are resolved by newest
// CreatedAt (then highest ID) so the result is deterministic for any input
// order. Without an active candidate the latest assignment by effective
// start date wins under the same tie-break.
func Reconcile(records []Record, now time.Time) map[int64]Representative {
	byTarget := make(map[int64][]Record)
	for _, rec := range records {
		byTarget[rec.TargetID] = append(byTarget[rec.TargetID], rec)
	}

	reps := make(map[int64]Representative, len(byTarget))
	for targetID, group := range byTarget {
		if rep, ok := pickActive(group, now); ok {
			reps[targetID] = Representative{Record: rep, Active: true}
			continue
		}
		reps[targetID] = Representative{Record: pickLatest(group)}
	}

	return reps
}

func pickActive(group []Record, now time.Time) (Record, bool) {
	var best Record
	found := false

	for _, rec := range group {
		if !IsActive(rec, now) {
			continue
		}
		if !found || newerCreated(rec, best) {
			best = rec
			found = true
		}
	}

	return best, found
}

func pickLatest(group []Record) Record {
	best := group[0]
	for _, rec := range group[1:] {
		switch {
		case effectiveStart(rec).After(effectiveStart(best)):
			best = rec
		case effectiveStart(rec).Equal(effectiveStart(best)) && newerCreated(rec, best):
			best = rec
		}
	}
	return best
}

// effectiveStart falls back to CreatedAt for assignments without an explicit
// start date, which are effective from creation.
func effectiveStart(rec Record) time.Time {
	if rec.StartAt != nil {
		return *rec.StartAt
	}
	return rec.CreatedAt
}

func newerCreated(a Record, b Record) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
