package ui

import (
	"os/exec"
	"strings"
)

// createLogo renders the wordmark with figlet. It returns an empty string
// when figlet is unavailable, and callers fall back to plain text.
func createLogo() string {
	cmd := exec.Command("figlet", "-f", "slant", "buildboard")
	output, err := cmd.Output()
	if err != nil || len(output) == 0 {
		return ""
	}
	return trimBlankLines(string(output))
}

func trimBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " "))
	}
	return strings.Join(kept, "\n")
}
