package main

import "time"

// candidate is one (uid, claimed creation time) pair handed to the key
// synthesizer. Candidates live only for the duration of one synthesis call.
type candidate struct {
	uid       string
	createdAt time.Time
}

// candidateGenerator walks creation-time offsets 0..=maxBackshift seconds
// backward from a fixed epoch. The claimed creation timestamp is the only
// cheap free variable available: uid and key algorithm are fixed, so shifting
// the timestamp is what produces distinct fingerprints. Finite and
// restartable; the worker starts a fresh generator with a new epoch when the
// range is exhausted.
type candidateGenerator struct {
	uid          string
	epoch        time.Time
	maxBackshift int64
	offset       int64
}

func newCandidateGenerator(uid string, epoch time.Time, maxBackshift int64) *candidateGenerator {
	return &candidateGenerator{
		uid:          uid,
		epoch:        epoch.UTC().Truncate(time.Second),
		maxBackshift: maxBackshift,
	}
}

// next returns the candidate at the current offset and advances. The bound is
// inclusive: offset 0 (the unshifted epoch) and offset maxBackshift are both
// visited, each exactly once.
func (g *candidateGenerator) next() (candidate, bool) {
	if g.offset > g.maxBackshift {
		return candidate{}, false
	}
	c := candidate{
		uid:       g.uid,
		createdAt: g.epoch.Add(-time.Duration(g.offset) * time.Second),
	}
	g.offset++
	return c, true
}
