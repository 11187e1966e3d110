// Package pairkey forms ligand-protein pair keys and derives deterministic seeds from them.
package pairkey

import "github.com/cespare/xxhash/v2"

// Separator joins the ligand and protein identifiers.
const Separator = "_"

// seedModulus bounds seeds to 32 bits.
const seedModulus = 1 << 32

// Key returns the composite lookup key for a ligand-protein pair.
func Key(ligandID, proteinID string) string {
	return ligandID + Separator + proteinID
}

// Seed returns a stable seed for key in [0, 2^32).
// Same key always yields the same seed, across runs and processes.
func Seed(key string) uint64 {
	return xxhash.Sum64String(key) % seedModulus
}
