package outwriter

import (
	"os"

	"github.com/talentops/ninebox/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTextWidth calculates the maximum width for free-text table
// columns (insight descriptions, category names) based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (priority, counts, labels) plus
	// table borders, separators, and padding.
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
