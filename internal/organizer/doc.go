// Package organizer turns engine decisions into a mutation plan and,
// separately, executes one. Planning is pure: it consumes a snapshot plus
// the backup-folder decisions and proposes folder relocations, per-file
// moves into the YYYY/MM-Month layout or the generated folders, and sidecar
// trash entries. Apply is the only code in the repository that mutates the
// library tree, and it only ever moves files; deletion stays a human call.
package organizer
