//go:build !noavx

package main

import simdsha "github.com/minio/sha256-simd"

func init() {
	seedSum = simdsha.Sum256
}

func seedHashBackendName() string {
	return "sha256-simd"
}
