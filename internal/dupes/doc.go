// Package dupes finds duplicate files and picks a default keeper per group.
//
// Grouping is a two-stage filter: records first bucket by exact byte size,
// then bucket survivors hash in parallel and sub-group by digest. The hash is
// never computed for a file whose size is unique. Keeper selection is a
// deterministic lexicographic cascade ending in lexical path order, so equal
// inputs always produce equal decisions. Both operations return data only;
// removal is the caller's business.
package dupes
