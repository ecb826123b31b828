// Package scan materializes a library root into an immutable snapshot.
//
// The walk recognizes media files by extension, flags sidecar junk for
// trash, classifies each file's location (dated YYYY/MM-Month layout,
// generated folders, backup candidates, everything else), and records the
// earliest of birth and modification time per file. The snapshot is the sole
// input to the decision engine; scanning itself never mutates the tree.
package scan
