package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for hook output.
var (
	// Path formats file paths. Yellow with color, undecorated without.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Pass formats passing results. Green with color, unchanged without.
	Pass = Formatter{color.New(color.FgGreen), "", ""}

	// Fail formats failing results. Red with color, unchanged without.
	Fail = Formatter{color.New(color.FgRed), "", ""}

	// Exempt formats files no rule governs.
	// Gray with color, (parentheses) without.
	Exempt = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
