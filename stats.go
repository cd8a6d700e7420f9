package main

import (
	"sync/atomic"
	"time"

	"github.com/hako/durafmt"
)

type minerStats struct {
	start    time.Time
	attempts atomic.Uint64
	found    atomic.Uint64
}

func newMinerStats() *minerStats {
	return &minerStats{start: time.Now()}
}

type statsSnapshot struct {
	Attempts   uint64  `json:"attempts"`
	Found      uint64  `json:"found"`
	KeysPerSec float64 `json:"keys_per_sec"`
	Threads    int     `json:"threads"`
	UptimeSecs float64 `json:"uptime_secs"`
	Uptime     string  `json:"uptime"`
	UpdatedAt  string  `json:"updated_at"`
}

// writeStatsSnapshot dumps the current aggregate state as JSON, replacing the
// previous snapshot atomically so readers never see a partial file.
func writeStatsSnapshot(path string, st *minerStats, keysPerSec float64, threads int) error {
	uptime := time.Since(st.start)
	snap := statsSnapshot{
		Attempts:   st.attempts.Load(),
		Found:      st.found.Load(),
		KeysPerSec: keysPerSec,
		Threads:    threads,
		UptimeSecs: uptime.Seconds(),
		Uptime:     durafmt.Parse(uptime.Truncate(time.Second)).LimitFirstN(2).String(),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	data, err := fastJSONMarshal(snap)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'), 0o644)
}
