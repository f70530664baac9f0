package banner

import (
	"fmt"
	"strings"

	"github.com/kr/text"
)

const logo = `
======================================================================
 ____  ____ _____
|  _ \|  _ \_   _|
| |_) | |_) || |
|  _ <|  __/ | |
|_| \_\_|    |_|
----------------------------------------------------------------------`

const footer = `======================================================================`

// ConfigLine represents a single configuration line to display
type ConfigLine struct {
	Label string
	Value string
}

// Print displays the startup banner with the service name and configuration
func Print(serviceName string, config []ConfigLine) {
	fmt.Println(logo)
	fmt.Printf("%s\n", serviceName)

	// Find max label length for alignment
	maxLen := 0
	for _, c := range config {
		if len(c.Label) > maxLen {
			maxLen = len(c.Label)
		}
	}

	// Print config lines with alignment, wrapping long values (e.g. a
	// TLS certificate path) so they never run off a narrow terminal.
	for _, c := range config {
		padding := strings.Repeat(" ", maxLen-len(c.Label))
		lines := strings.Split(text.Wrap(c.Value, 60), "\n")
		fmt.Printf("  %s%s : %s\n", c.Label, padding, lines[0])
		if len(lines) > 1 {
			indent := strings.Repeat(" ", maxLen+5)
			fmt.Print(text.Indent(strings.Join(lines[1:], "\n"), indent) + "\n")
		}
	}

	fmt.Println()
	fmt.Println("Ready.")
	fmt.Println(footer)
	fmt.Println()
}
