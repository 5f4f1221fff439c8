package output

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func ptr(n int64) *int64 { return &n }

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   *int64
		want string
	}{
		{nil, "-"},
		{ptr(0), "0B"},
		{ptr(512), "512B"},
		{ptr(1023), "1023B"},
		{ptr(1024), "1K"},
		{ptr(1536), "1.5K"},
		{ptr(100 * 1024), "100K"},
		{ptr(1048576), "1M"},
		{ptr(5 * 1024 * 1024 * 1024), "5G"},
		{ptr(2048 * 1024 * 1024 * 1024 * 1024), "2048T"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	at := func(days int) *time.Time {
		t := now.Add(-time.Duration(days) * 24 * time.Hour)
		return &t
	}

	tests := []struct {
		in   *time.Time
		want string
	}{
		{nil, "-"},
		{at(0), "0d"},
		{at(29), "29d"},
		{at(30), "1mo"},
		{at(364), "12mo"},
		{at(365), "1y"},
		{at(800), "2y"},
		{at(-5), "0d"},
	}

	for _, tt := range tests {
		if got := FormatAge(tt.in, now); got != tt.want {
			t.Errorf("FormatAge(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortenPath(t *testing.T) {
	tests := []struct {
		path, home string
		max        int
		want       string
	}{
		{"/home/dev/src/app", "/home/dev", 36, "~/src/app"},
		{"/opt/app", "/home/dev", 36, "/opt/app"},
		{"/a/very/long/path/that/goes/on", "", 13, "/a/ve...es/on"},
	}

	for _, tt := range tests {
		got := shortenPath(tt.path, tt.home, tt.max)
		if got != tt.want {
			t.Errorf("shortenPath(%q, %q, %d) = %q, want %q", tt.path, tt.home, tt.max, got, tt.want)
		}
		if len([]rune(got)) > tt.max {
			t.Errorf("shortenPath result %q longer than %d", got, tt.max)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work")

	tests := []struct {
		target string
		want   string
	}{
		{filepath.Join(root, "app", "node_modules"), "app"},
		{filepath.Join(root, "node_modules"), "."},
		{filepath.Join(root, "app", "dist"), filepath.Join("app", "dist")},
		{root, "."},
	}

	for _, tt := range tests {
		if got := DisplayPath(tt.target, root); got != tt.want {
			t.Errorf("DisplayPath(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestBarChart(t *testing.T) {
	tests := []struct {
		value, max int64
		filled     int
	}{
		{0, 0, 0},
		{0, 100, 0},
		{50, 100, 5},
		{100, 100, 10},
		{200, 100, 10},
	}

	for _, tt := range tests {
		bar := BarChart(tt.value, tt.max, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("BarChart(%d, %d) filled = %d, want %d", tt.value, tt.max, got, tt.filled)
		}
		if got := len([]rune(bar)); got != 12 {
			t.Errorf("BarChart(%d, %d) width = %d, want 12", tt.value, tt.max, got)
		}
	}
}

func TestBoxLine(t *testing.T) {
	line := BoxLine("hello", 10)
	if line != "│hello     │" {
		t.Errorf("BoxLine() = %q", line)
	}
	clipped := BoxLine(strings.Repeat("x", 20), 10)
	if len([]rune(clipped)) != 12 {
		t.Errorf("clipped BoxLine width = %d, want 12", len([]rune(clipped)))
	}
}

func TestBoxRowWidth(t *testing.T) {
	for _, value := range []string{"", "short", strings.Repeat("v", 80)} {
		row := boxRow("Label", value)
		if got := len([]rune(row)); got != boxWidth+2 {
			t.Errorf("boxRow(%q) width = %d, want %d", value, got, boxWidth+2)
		}
	}
}
