package main

import (
	"testing"
	"time"
)

func TestKeyIndex_RecordAndCount(t *testing.T) {
	db, err := openKeyIndex(keyIndexPath(t.TempDir()))
	if err != nil {
		t.Fatalf("openKeyIndex: %v", err)
	}
	defer db.Close()

	k := &minedKey{
		uid:         "test",
		createdAt:   time.Unix(1700000000, 0).UTC(),
		fingerprint: "4C807A5F02F422C0A5DBDD86DC4AE808ABCDEF12",
	}
	if err := recordFoundKey(db, k, "/tmp/out/"+k.fingerprint+".asc", false); err != nil {
		t.Fatalf("recordFoundKey: %v", err)
	}
	n, err := countFoundKeys(db)
	if err != nil {
		t.Fatalf("countFoundKeys: %v", err)
	}
	if n != 1 {
		t.Fatalf("count=%d, want 1", n)
	}

	// Re-recording the same fingerprint replaces the row.
	if err := recordFoundKey(db, k, "/tmp/out/other.asc", true); err != nil {
		t.Fatalf("recordFoundKey (replace): %v", err)
	}
	n, err = countFoundKeys(db)
	if err != nil {
		t.Fatalf("countFoundKeys: %v", err)
	}
	if n != 1 {
		t.Fatalf("count=%d after replace, want 1", n)
	}

	var file string
	var encrypted int
	if err := db.QueryRow(`SELECT file, encrypted FROM found_keys WHERE fingerprint = ?`, k.fingerprint).Scan(&file, &encrypted); err != nil {
		t.Fatalf("query: %v", err)
	}
	if file != "/tmp/out/other.asc" || encrypted != 1 {
		t.Fatalf("row=(%s, %d), want replaced values", file, encrypted)
	}
}

func TestKeyIndex_ReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	db, err := openKeyIndex(keyIndexPath(dir))
	if err != nil {
		t.Fatalf("openKeyIndex: %v", err)
	}
	k := &minedKey{uid: "test", createdAt: time.Unix(1700000000, 0).UTC(), fingerprint: "AA00"}
	if err := recordFoundKey(db, k, "x.asc", false); err != nil {
		t.Fatalf("recordFoundKey: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = openKeyIndex(keyIndexPath(dir))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	n, err := countFoundKeys(db)
	if err != nil {
		t.Fatalf("countFoundKeys: %v", err)
	}
	if n != 1 {
		t.Fatalf("count=%d after reopen, want 1", n)
	}
}
