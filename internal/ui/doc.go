// Package ui provides semantic text formatting for hook output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set, or output is not a terminal (pre-commit usually captures it),
// text decorations are used instead:
//
//   - Exempt: (parentheses)
//   - Others: no decoration
//
// # Usage
//
//	fmt.Println(ui.Fail.Sprint(result.Reason))
//	log.Infof("Found configuration: %s", ui.Path.Sprint(path))
package ui
