// Package checksum provides content digests for diagnostics.
//
// Digests are BLAKE3-256, hex encoded. The CLI prints them next to archive
// entries in verbose list mode and logs input and output digests in
// verbose mode so that two runs can be compared at a glance.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest := calculator.Sum(content)
//
// # Thread Safety
//
// BLAKE3 is safe for concurrent use by multiple goroutines.
package checksum
