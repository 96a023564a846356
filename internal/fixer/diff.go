package fixer

import (
	"bytes"
	"fmt"
	"strings"
)

// Diff computes a simple line diff between the original and fixed manifest
// content. Returns empty string if contents are identical.
func Diff(original, fixed, filename string) string {
	if original == fixed {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("--- %s\n", filename))
	buf.WriteString(fmt.Sprintf("+++ %s (fixed)\n", filename))

	origLines := strings.Split(original, "\n")
	fixedLines := strings.Split(fixed, "\n")

	maxLen := len(origLines)
	if len(fixedLines) > maxLen {
		maxLen = len(fixedLines)
	}

	for i := 0; i < maxLen; i++ {
		var origLine, fixedLine string
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fixedLines) {
			fixedLine = fixedLines[i]
		}

		if origLine != fixedLine {
			if origLine != "" {
				buf.WriteString(fmt.Sprintf("- %s\n", origLine))
			}
			if fixedLine != "" {
				buf.WriteString(fmt.Sprintf("+ %s\n", fixedLine))
			}
		}
	}

	return buf.String()
}
