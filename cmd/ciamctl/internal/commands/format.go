package commands

import (
	"fmt"
	"strings"
)

func opStart(title string) {
	fmt.Printf("▼ %s\n", title)
}

func opEnd(title string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	fmt.Printf("▲ %s (%s)\n", title, status)
}

func step(message string, indent int) {
	fmt.Printf("%s• %s\n", strings.Repeat(" ", indent), message)
}

// maskToken shortens a token for display, keeping the first and last
// visible characters.
func maskToken(token string, visible int) string {
	if len(token) <= visible*2 {
		return token
	}
	return token[:visible] + "..." + token[len(token)-visible:]
}
