// Package backup decides the fate of ad hoc backup folders.
//
// A backup folder encodes a date in its name in one of five recognized
// patterns. Analysis parses the name and then asks the folder's members to
// vote: if a strict majority of member timestamps agree with the parsed date
// at its own granularity, the folder is preserved under its inferred year;
// otherwise its contents are redistributed file by file. Ambiguity is always
// returned as a decision variant, never resolved silently.
package backup
