package main

import (
	"sync/atomic"
	"time"
)

// report is what workers push to the coordinator: either a found key or a
// throughput sample, never both. key == nil marks a sample.
type report struct {
	key   *minedKey
	speed float64 // candidates per second over one sample block
}

// workerConfig is the immutable per-worker view of the run configuration.
type workerConfig struct {
	uid          string
	entropy      string
	maxBackshift int64 // seconds, inclusive bound
	sampleBlock  int
	patterns     []string
}

// mineWorker runs candidate passes until the stop flag is raised or the
// synthesizer fails. Each pass samples a fresh epoch, so wall-clock progress
// keeps producing candidates that earlier passes never visited; the loop is
// effectively infinite until cancellation.
func mineWorker(id int, wc workerConfig, stop *atomic.Bool, reports chan<- report, st *minerStats) error {
	logger.Debug("worker started", "worker", id)
	for {
		if err := minePass(wc, time.Now(), stop, reports, st); err != nil {
			logger.Debug("worker failed", "worker", id, "error", err)
			return err
		}
		if stop.Load() {
			logger.Debug("worker stopped", "worker", id)
			return nil
		}
	}
}

// minePass walks one full backshift range from epoch. Matches are emitted
// before the stop check so an in-flight find is never dropped on shutdown;
// the flag is read once per candidate, which bounds shutdown latency to a
// single synthesis.
func minePass(wc workerConfig, epoch time.Time, stop *atomic.Bool, reports chan<- report, st *minerStats) error {
	gen := newCandidateGenerator(wc.uid, epoch, wc.maxBackshift)
	blockStart := time.Now()
	blockCount := 0

	for {
		cand, ok := gen.next()
		if !ok {
			return nil
		}
		k, err := synthesize(wc.entropy, cand.uid, cand.createdAt)
		if err != nil {
			return err
		}
		st.attempts.Add(1)

		if matchesPattern(k.fingerprint, wc.patterns) {
			reports <- report{key: k}
		}
		if stop.Load() {
			return nil
		}

		blockCount++
		if blockCount >= wc.sampleBlock {
			if elapsed := time.Since(blockStart).Seconds(); elapsed > 0 {
				reports <- report{speed: float64(blockCount) / elapsed}
			}
			blockStart = time.Now()
			blockCount = 0
		}
	}
}
