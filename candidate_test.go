package main

import (
	"testing"
	"time"
)

func TestCandidateGenerator_InclusiveBoundsAndOrder(t *testing.T) {
	epoch := time.Unix(1700000000, 0).UTC()
	const maxBackshift = 5

	gen := newCandidateGenerator("test", epoch, maxBackshift)
	var got []candidate
	for {
		c, ok := gen.next()
		if !ok {
			break
		}
		got = append(got, c)
	}

	if len(got) != maxBackshift+1 {
		t.Fatalf("candidates=%d, want %d (offsets 0..=%d)", len(got), maxBackshift+1, maxBackshift)
	}
	if !got[0].createdAt.Equal(epoch) {
		t.Fatalf("first createdAt=%v, want epoch %v (offset 0 must be included)", got[0].createdAt, epoch)
	}
	last := got[len(got)-1].createdAt
	if want := epoch.Add(-maxBackshift * time.Second); !last.Equal(want) {
		t.Fatalf("last createdAt=%v, want %v", last, want)
	}
	for i := 1; i < len(got); i++ {
		if diff := got[i-1].createdAt.Sub(got[i].createdAt); diff != time.Second {
			t.Fatalf("step %d: createdAt decreased by %v, want exactly 1s", i, diff)
		}
	}
	if _, ok := gen.next(); ok {
		t.Fatalf("generator yielded a candidate past the backshift bound")
	}
}

func TestCandidateGenerator_BackshiftOneYieldsTwoCandidates(t *testing.T) {
	epoch := time.Unix(1700000000, 0).UTC()
	gen := newCandidateGenerator("test", epoch, 1)
	count := 0
	for {
		if _, ok := gen.next(); !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("candidates=%d, want 2", count)
	}
}

func TestCandidateGenerator_ZeroBackshift(t *testing.T) {
	epoch := time.Unix(1700000000, 0).UTC()
	gen := newCandidateGenerator("test", epoch, 0)
	c, ok := gen.next()
	if !ok {
		t.Fatalf("expected the unshifted candidate at offset 0")
	}
	if !c.createdAt.Equal(epoch) {
		t.Fatalf("createdAt=%v, want %v", c.createdAt, epoch)
	}
	if _, ok := gen.next(); ok {
		t.Fatalf("zero backshift must yield exactly one candidate")
	}
}

func TestCandidateGenerator_Restartable(t *testing.T) {
	epoch := time.Unix(1700000000, 0).UTC()
	collect := func() []candidate {
		gen := newCandidateGenerator("test", epoch, 3)
		var out []candidate
		for {
			c, ok := gen.next()
			if !ok {
				return out
			}
			out = append(out, c)
		}
	}
	first, second := collect(), collect()
	if len(first) != len(second) {
		t.Fatalf("restarted generator yielded %d candidates, want %d", len(second), len(first))
	}
	for i := range first {
		if !first[i].createdAt.Equal(second[i].createdAt) || first[i].uid != second[i].uid {
			t.Fatalf("candidate %d differs across restarts: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCandidateGenerator_TruncatesSubsecondEpoch(t *testing.T) {
	epoch := time.Unix(1700000000, 123456789).UTC()
	gen := newCandidateGenerator("test", epoch, 0)
	c, _ := gen.next()
	if c.createdAt.Nanosecond() != 0 {
		t.Fatalf("createdAt has sub-second precision %v, want whole seconds", c.createdAt)
	}
}
