// Package catalog persists bookkeeping state between runs: a content-hash
// cache keyed by path, size, and mtime, a run journal, and the keeper
// suggestions produced per duplicate group. The decision engine never reads
// catalog state to make a decision; losing the database costs rehashing
// time, nothing else.
package catalog
