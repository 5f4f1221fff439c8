package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/npm"
	"github.com/blackwell-systems/envoic/internal/scanner"
)

// RenderReport renders the full scan report: the summary box, the
// environment table, the artifact table and, for deep scans, a size chart.
func RenderReport(r *scanner.Result, deep bool) string {
	staleCount, outdatedCount := 0, 0
	for _, env := range r.Environments {
		if env.IsStale {
			staleCount++
		}
		if env.IsOutdated {
			outdatedCount++
		}
	}
	artifactCount := 0
	var artifactSize int64
	for _, s := range r.ArtifactSummary {
		artifactCount += s.Count
		artifactSize += s.TotalSizeBytes
	}
	artSize := "-"
	if deep {
		artSize = FormatBytes(artifactSize)
	}

	var lines []string
	lines = append(lines,
		boxTop(),
		BoxLine("  ENVOIC - JavaScript Environment Report", boxWidth),
		BoxLine("  TR-200  Environment Scanner", boxWidth),
		boxMid(),
		boxRow("Date", FormatTimestamp(r.Timestamp)),
		boxRow("Host", r.Hostname),
		boxRow("Scan Path", ShortenPath(r.ScanPath, 36)),
		boxRow("Scan Depth", fmt.Sprint(r.ScanDepth)),
		boxRow("Duration", fmt.Sprintf("%.2fs", r.DurationSeconds)),
		boxMid(),
		boxRow("NM Found", fmt.Sprint(len(r.Environments))),
		boxRow("Total Size", FormatBytes(r.TotalSizeBytes)),
		boxRow("Stale", fmt.Sprintf(">%dd: %d", r.StaleDays, staleCount)),
		boxRow("Outdated", fmt.Sprint(outdatedCount)),
		boxRow("Artifacts", fmt.Sprint(artifactCount)),
		boxRow("Art Size", artSize),
		boxBottom(),
		"",
	)

	lines = append(lines, heading("NODE MODULES"), rule(), envHeader(), rule())
	if len(r.Environments) == 0 {
		lines = append(lines, "  (no node_modules found)")
	}
	for i, env := range r.Environments {
		lines = append(lines, envRow(i+1, env, r.ScanPath, r.Timestamp))
	}
	lines = append(lines, rule(), "")

	lines = append(lines, heading("ARTIFACTS"), rule())
	lines = append(lines, fmt.Sprintf("  %-22s %6s %8s %16s", "Category", "Count", "Size", "Safety"))
	lines = append(lines, rule())
	for _, s := range r.ArtifactSummary {
		lines = append(lines, fmt.Sprintf("  %s %6d %8s %s",
			padRight(s.Pattern, 22),
			s.Count,
			FormatBytes(s.TotalSizeBytes),
			paint(safetyStyles[s.Safety], padLeft(artifacts.SafetyText(s.Safety), 16)),
		))
	}
	if len(r.ArtifactSummary) == 0 {
		lines = append(lines, "  (no artifacts found)")
	}
	lines = append(lines, rule())

	if deep {
		lines = append(lines, "", heading("SIZE DISTRIBUTION"))
		var maxSize int64
		for _, env := range r.Environments {
			if env.SizeBytes != nil && *env.SizeBytes > maxSize {
				maxSize = *env.SizeBytes
			}
		}
		for _, env := range r.Environments {
			if env.SizeBytes == nil {
				continue
			}
			label := DisplayPath(env.Path, r.ScanPath)
			lines = append(lines, fmt.Sprintf("  %s %s %6s",
				BarChart(*env.SizeBytes, maxSize, 24),
				padRight(ShortenPath(label, 24), 24),
				FormatBytes(*env.SizeBytes),
			))
		}
	}

	return strings.Join(lines, "\n")
}

// RenderList renders the plain environment table used by "envoic list".
func RenderList(envs []npm.Environment, root string, now time.Time) string {
	lines := []string{envHeader(), rule()}
	for i, env := range envs {
		lines = append(lines, envRow(i+1, env, root, now))
	}
	if len(envs) == 0 {
		lines = append(lines, "  (no node_modules found)")
	}
	return strings.Join(lines, "\n")
}

// RenderInfo renders the detail view of a single environment.
func RenderInfo(env npm.Environment, top []npm.PackageSize, hint string) string {
	packages := "-"
	if env.PackageCount != nil {
		packages = fmt.Sprint(*env.PackageCount)
	}
	modified := "-"
	if env.Modified != nil {
		modified = FormatTimestamp(*env.Modified)
	}

	lines := []string{
		boxTop(),
		BoxLine("  ENVOIC - Node Modules Detail", boxWidth),
		boxMid(),
		boxRow("Path", env.Path),
		boxRow("Manager", string(env.PackageManager)),
		boxRow("Packages", packages),
		boxRow("Size", FormatSize(env.SizeBytes)),
		boxRow("Modified", modified),
		boxRow("Stale", yesNo(env.IsStale)),
		boxRow("Outdated", yesNo(env.IsOutdated)),
		boxRow("Reinstall", hint),
		boxBottom(),
		"",
		heading("TOP PACKAGES"),
		rule(),
	}
	if len(top) == 0 {
		lines = append(lines, "  (no packages found)")
	}
	for i, p := range top {
		lines = append(lines, fmt.Sprintf("  %2d. %s (%s)", i+1, p.Name, FormatBytes(p.Size)))
	}
	lines = append(lines, rule())

	return strings.Join(lines, "\n")
}

// EnvironmentLabel is the one-line description of an environment used in
// selection prompts.
func EnvironmentLabel(env npm.Environment, root string, now time.Time) string {
	return fmt.Sprintf("%s %-8s %6s  %5s%s",
		padRight(DisplayPath(env.Path, root), 45),
		env.PackageManager,
		FormatSize(env.SizeBytes),
		FormatAge(env.Modified, now),
		badges(env.IsStale, env.IsOutdated),
	)
}

// ArtifactGroupLabel describes a group of artifacts sharing a pattern.
func ArtifactGroupLabel(s artifacts.Summary) string {
	return fmt.Sprintf("%s %4d items %8s  %s",
		padRight("artifact: "+s.Pattern, 32),
		s.Count,
		FormatBytes(s.TotalSizeBytes),
		paint(safetyStyles[s.Safety], artifacts.SafetyText(s.Safety)),
	)
}

func envHeader() string {
	return fmt.Sprintf("  %-3s %-30s %-8s %6s %5s", "#", "Path", "Pkg Mgr", "Size", "Age")
}

func envRow(index int, env npm.Environment, root string, now time.Time) string {
	label := ShortenPath(DisplayPath(env.Path, root), 30)
	return fmt.Sprintf("  %-3d %s %-8s %6s %5s%s",
		index,
		padRight(label, 30),
		env.PackageManager,
		FormatSize(env.SizeBytes),
		FormatAge(env.Modified, now),
		badges(env.IsStale, env.IsOutdated),
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
