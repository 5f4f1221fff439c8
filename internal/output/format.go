package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/envoic/internal/npm"
)

const boxWidth = 58

var sizeUnits = []string{"K", "M", "G", "T"}

// FormatSize renders a byte count compactly: "512B", "1K", "1.5M", "120G".
// Nil renders as "-".
func FormatSize(n *int64) string {
	if n == nil {
		return "-"
	}
	return FormatBytes(*n)
}

// FormatBytes is FormatSize for a known value.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}

	value := float64(n)
	for i, unit := range sizeUnits {
		value /= 1024
		if value < 1024 || i == len(sizeUnits)-1 {
			if value >= 100 {
				return fmt.Sprintf("%.0f%s", value, unit)
			}
			return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + unit
		}
	}

	return fmt.Sprintf("%dB", n)
}

// FormatAge renders the time since t as whole days, months or years:
// "12d", "3mo", "2y". Nil renders as "-".
func FormatAge(t *time.Time, now time.Time) string {
	if t == nil {
		return "-"
	}
	days := int(now.Sub(*t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	switch {
	case days < 30:
		return fmt.Sprintf("%dd", days)
	case days < 365:
		return fmt.Sprintf("%dmo", days/30)
	default:
		return fmt.Sprintf("%dy", days/365)
	}
}

// FormatTimestamp renders t in UTC as "2006-01-02 15:04:05".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// ShortenPath abbreviates the home directory to "~" and, if the result is
// still longer than maxLen, elides the middle with "...".
func ShortenPath(path string, maxLen int) string {
	home, _ := os.UserHomeDir()
	return shortenPath(path, home, maxLen)
}

func shortenPath(path, home string, maxLen int) string {
	text := path
	if home != "" && strings.HasPrefix(text, home) {
		text = "~" + text[len(home):]
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	keep := maxLen - 3
	if keep < 0 {
		keep = 0
	}
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "..." + string(runes[len(runes)-suffix:])
}

// DisplayPath shows target relative to root. A node_modules directory is
// shown as the project that owns it, and the root itself as ".".
func DisplayPath(target, root string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return target
	}
	if filepath.Base(rel) == npm.DirName {
		return filepath.Dir(rel)
	}
	return rel
}

// BarChart draws value relative to maxValue as a bracketed bar of width cells.
func BarChart(value, maxValue int64, width int) string {
	if maxValue <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	filled := int(float64(value)/float64(maxValue)*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// BoxLine clips or pads text to width and wraps it in vertical borders.
func BoxLine(text string, width int) string {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	return "│" + padRight(string(runes), width) + "│"
}

func boxTop() string    { return "┌" + strings.Repeat("─", boxWidth) + "┐" }
func boxMid() string    { return "├" + strings.Repeat("─", boxWidth) + "┤" }
func boxBottom() string { return "└" + strings.Repeat("─", boxWidth) + "┘" }

func rule() string { return strings.Repeat("─", boxWidth) }

// boxRow renders a label on the left and a right-aligned value inside a box line.
func boxRow(label, value string) string {
	left := "  " + padRight(label, 12)
	rightWidth := boxWidth - len(left) - 2
	if rightWidth < 0 {
		rightWidth = 0
	}
	runes := []rune(value)
	if len(runes) > rightWidth {
		runes = runes[:rightWidth]
	}
	return BoxLine(left+padLeft(string(runes), rightWidth)+"  ", boxWidth)
}

// padRight and padLeft pad by display width, so coloured or wide text lines up.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
