package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteStatsSnapshot(t *testing.T) {
	st := newMinerStats()
	st.attempts.Store(12345)
	st.found.Store(2)

	path := filepath.Join(t.TempDir(), "stats.json")
	if err := writeStatsSnapshot(path, st, 420.5, 8); err != nil {
		t.Fatalf("writeStatsSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap statsSnapshot
	if err := fastJSONUnmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.Attempts != 12345 {
		t.Fatalf("attempts=%d, want 12345", snap.Attempts)
	}
	if snap.Found != 2 {
		t.Fatalf("found=%d, want 2", snap.Found)
	}
	if snap.KeysPerSec != 420.5 {
		t.Fatalf("keys_per_sec=%v, want 420.5", snap.KeysPerSec)
	}
	if snap.Threads != 8 {
		t.Fatalf("threads=%d, want 8", snap.Threads)
	}
	if snap.UpdatedAt == "" || snap.Uptime == "" {
		t.Fatalf("snapshot missing timestamps: %+v", snap)
	}
}

func TestWriteStatsSnapshot_Overwrites(t *testing.T) {
	st := newMinerStats()
	path := filepath.Join(t.TempDir(), "stats.json")

	st.attempts.Store(1)
	if err := writeStatsSnapshot(path, st, 1, 1); err != nil {
		t.Fatalf("first write: %v", err)
	}
	st.attempts.Store(2)
	if err := writeStatsSnapshot(path, st, 2, 1); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap statsSnapshot
	if err := fastJSONUnmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.Attempts != 2 {
		t.Fatalf("attempts=%d, want the replaced value 2", snap.Attempts)
	}
}
