//go:build noavx

package main

import stdsha "crypto/sha256"

func init() {
	seedSum = stdsha.Sum256
}

func seedHashBackendName() string {
	return "crypto/sha256"
}
