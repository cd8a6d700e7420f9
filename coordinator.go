package main

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
)

// speedEstimator smooths per-worker throughput samples with a 2:1 weighting
// of history over the incoming sample.
type speedEstimator struct {
	avg float64
}

func (e *speedEstimator) update(sample float64) {
	e.avg = (2*e.avg + sample) / 3
}

func (e *speedEstimator) value() float64 {
	return e.avg
}

// runSearch owns the whole search lifecycle: fan out workers, consume their
// reports until the channel closes, persist matches, then join. The stop
// flag is the only shutdown input; the channel closes exactly when every
// worker has returned.
func runSearch(cfg Config, patterns []string, stop *atomic.Bool) error {
	st := newMinerStats()
	reports := make(chan report, reportQueueDepth)

	wc := workerConfig{
		uid:          cfg.UID,
		entropy:      cfg.KeyEntropy,
		maxBackshift: int64(cfg.MaxBackshiftDays) * 24 * 60 * 60,
		sampleBlock:  cfg.SpeedSampleBlock,
		patterns:     patterns,
	}

	var (
		workerErrMu sync.Mutex
		workerErrs  []error
	)
	swg := sizedwaitgroup.New(cfg.Threads)
	for i := 0; i < cfg.Threads; i++ {
		swg.Add()
		go func(id int) {
			defer swg.Done()
			if err := mineWorker(id, wc, stop, reports, st); err != nil {
				workerErrMu.Lock()
				workerErrs = append(workerErrs, fmt.Errorf("worker %d: %w", id, err))
				workerErrMu.Unlock()
				stop.Store(true)
			}
		}(i)
	}
	go func() {
		swg.Wait()
		close(reports)
	}()

	keyIndex, err := openKeyIndex(keyIndexPath(cfg.OutputDir))
	if err != nil {
		logger.Warn("key index unavailable, continuing without it", "error", err)
		keyIndex = nil
	}
	if keyIndex != nil {
		defer keyIndex.Close()
	}

	var (
		est        speedEstimator
		lastShow   = time.Now()
		persistErr error
	)
	showInterval := time.Duration(cfg.SpeedDisplaySeconds) * time.Second

	for rep := range reports {
		if rep.key != nil {
			if persistErr != nil {
				// Already failing; drain so workers can finish their sends.
				continue
			}
			logger.Info("found key", "fingerprint", rep.key.fingerprint)
			path, encrypted, err := exportKey(rep.key, cfg.OutputDir, cfg.EncryptExports)
			if err != nil {
				logger.Error("export key failed", "fingerprint", rep.key.fingerprint, "error", err)
				persistErr = err
				stop.Store(true)
				continue
			}
			st.found.Add(1)
			logger.Info("exported key", "path", path)
			if keyIndex != nil {
				if err := recordFoundKey(keyIndex, rep.key, path, encrypted); err != nil {
					logger.Warn("key index write failed", "fingerprint", rep.key.fingerprint, "error", err)
				}
			}
			continue
		}

		est.update(rep.speed)
		if time.Since(lastShow) >= showInterval {
			aggregate := est.value() * float64(cfg.Threads)
			logger.Info("estimated speed",
				"keys_per_sec", fmt.Sprintf("%.2f", aggregate),
				"threads", cfg.Threads,
				"attempts", st.attempts.Load(),
				"uptime", durafmt.Parse(time.Since(st.start).Truncate(time.Second)).LimitFirstN(2).String())
			lastShow = time.Now()
			if cfg.StatsJSONPath != "" {
				if err := writeStatsSnapshot(cfg.StatsJSONPath, st, aggregate, cfg.Threads); err != nil {
					logger.Warn("stats snapshot write failed", "path", cfg.StatsJSONPath, "error", err)
				}
			}
		}
	}

	// Channel closed: every worker has returned its send handle.
	elapsed := time.Since(st.start)
	avg := float64(st.attempts.Load()) / math.Max(elapsed.Seconds(), 1e-9)
	logger.Info("search finished",
		"attempts", st.attempts.Load(),
		"found", st.found.Load(),
		"elapsed", durafmt.Parse(elapsed.Truncate(time.Second)).LimitFirstN(2).String(),
		"avg_keys_per_sec", fmt.Sprintf("%.2f", avg))

	if persistErr != nil {
		return persistErr
	}
	workerErrMu.Lock()
	defer workerErrMu.Unlock()
	if len(workerErrs) > 0 {
		return errors.Join(workerErrs...)
	}
	return nil
}
