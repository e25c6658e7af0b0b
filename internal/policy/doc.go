// Package policy selects the creation rule that governs a file.
//
// Rules are tried in configuration order and the first whose path_regex
// matches wins, even when a later rule would be more specific.
package policy
