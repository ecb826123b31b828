// Command mediasort sorts a media library into a YYYY/MM-Month layout,
// resolves phone-backup folders by majority vote, and reports duplicate
// files with a deterministic keeper suggestion. scan previews, apply
// executes, dupes reports; nothing is ever deleted.
package main
