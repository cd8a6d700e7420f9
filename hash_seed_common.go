package main

type seedSumFunc func([]byte) [32]byte

// seedSum is the SHA-256 backend used for key-seed derivation. The default
// build wires the SIMD implementation; the noavx tag falls back to the
// standard library.
var seedSum seedSumFunc
