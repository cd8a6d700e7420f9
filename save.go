package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// ensureOutputDir creates dir if it is missing and rejects paths that exist
// but are not directories.
func ensureOutputDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("output directory does not exist, creating", "path", dir)
			return os.MkdirAll(dir, 0o755)
		}
		return fmt.Errorf("stat output dir %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("output path %s exists and is not a directory", dir)
	}
	return nil
}

// exportKey writes the armored key to <fingerprint>.asc in dir. With encrypt
// set, the key material is protected by a generated passphrase written to a
// 0600 sidecar next to the export.
func exportKey(k *minedKey, dir string, encrypt bool) (path string, encrypted bool, err error) {
	passphrase := ""
	if encrypt {
		passphrase = generateExportPassphrase()
	}
	armored, err := k.armoredExport(passphrase)
	if err != nil {
		return "", false, fmt.Errorf("armor key %s: %w", k.fingerprint, err)
	}

	path = filepath.Join(dir, k.fingerprint+".asc")
	if err := writeFileAtomic(path, []byte(armored), 0o644); err != nil {
		return "", false, fmt.Errorf("write key file %s: %w", path, err)
	}
	if passphrase != "" {
		if err := writeFileAtomic(path+".passphrase", []byte(passphrase+"\n"), 0o600); err != nil {
			return "", false, fmt.Errorf("write passphrase file: %w", err)
		}
	}
	return path, passphrase != "", nil
}

// writeFileAtomic writes via a temp file in the same directory plus rename,
// so a crash mid-write never leaves a truncated export behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
