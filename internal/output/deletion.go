package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/cleaner"
	"github.com/blackwell-systems/envoic/internal/store"
)

// RenderSelection renders the list of items about to be deleted and the
// total that will be freed, based on the sizes recorded during the scan.
func RenderSelection(items []cleaner.Item, root string) string {
	var sb strings.Builder

	sb.WriteString("\n" + paint(warningStyle, "⚠ The following items will be PERMANENTLY DELETED:") + "\n\n")

	var total int64
	for i, item := range items {
		var size int64
		if item.SizeBytes() != nil {
			size = *item.SizeBytes()
		}
		total += size
		sb.WriteString(fmt.Sprintf("  %-3d %s %6s  %s\n",
			i+1,
			padRight(DisplayPath(item.Path(), root), 42),
			FormatBytes(size),
			selectionTag(item),
		))
	}

	sb.WriteString(fmt.Sprintf("\n  Total: %s will be freed\n", FormatBytes(total)))
	return sb.String()
}

func selectionTag(item cleaner.Item) string {
	if env, ok := item.Environment(); ok {
		return string(env.PackageManager) + badges(env.IsStale, env.IsOutdated)
	}
	if a, ok := item.Artifact(); ok {
		return paint(safetyStyles[a.Safety], artifacts.SafetyText(a.Safety))
	}
	return ""
}

// RenderDeletionReport summarises a deletion batch. initialTotal is the
// number of environments found by the scan.
func RenderDeletionReport(s cleaner.Summary, initialTotal int) string {
	remaining := initialTotal - s.DeletedCount
	if remaining < 0 {
		remaining = 0
	}
	freed := s.BytesFreed
	if s.DryRun {
		freed = s.WouldFreeBytes
	}

	lines := []string{rule()}
	if s.DryRun {
		lines = append(lines, "  DRY RUN SUMMARY")
	}
	lines = append(lines,
		fmt.Sprintf("  Deleted:   %d environments", s.DeletedCount),
		fmt.Sprintf("  Failed:    %d", s.FailedCount),
		fmt.Sprintf("  Skipped:   %d", s.SkippedCount),
		fmt.Sprintf("  Freed:     %s", FormatBytes(freed)),
		fmt.Sprintf("  Remaining: %d environments", remaining),
		rule(),
	)
	for _, e := range s.Errors {
		lines = append(lines, paint(dimStyle, "  ! "+e))
	}

	return strings.Join(lines, "\n")
}

// RenderHistoryTable renders recorded deletion batches, newest first.
func RenderHistoryTable(batches []*store.Batch) string {
	if len(batches) == 0 {
		return "No deletions recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-8s  %-19s  %-30s %7s %6s %7s %7s\n",
		"Batch", "Date", "Root", "Deleted", "Failed", "Skipped", "Freed"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, b := range batches {
		id := b.ID
		if len(id) > 8 {
			id = id[:8]
		}
		sb.WriteString(fmt.Sprintf("%-8s  %-19s  %s %7d %6d %7d %7s\n",
			id,
			FormatTimestamp(b.CreatedAt),
			padRight(ShortenPath(b.ScanRoot, 30), 30),
			b.DeletedCount,
			b.FailedCount,
			b.SkippedCount,
			FormatBytes(b.BytesFreed),
		))
	}

	return sb.String()
}

// RenderBatchDetail renders one batch and the outcome of every item in it.
func RenderBatchDetail(b *store.Batch, deletions []*store.Deletion) string {
	lines := []string{
		boxTop(),
		BoxLine("  ENVOIC - Deletion Batch", boxWidth),
		boxMid(),
		boxRow("Batch", b.ID),
		boxRow("Date", FormatTimestamp(b.CreatedAt)),
		boxRow("Root", ShortenPath(b.ScanRoot, 36)),
		boxRow("Selected", fmt.Sprint(b.SelectedCount)),
		boxRow("Deleted", fmt.Sprint(b.DeletedCount)),
		boxRow("Failed", fmt.Sprint(b.FailedCount)),
		boxRow("Skipped", fmt.Sprint(b.SkippedCount)),
		boxRow("Freed", FormatBytes(b.BytesFreed)),
		boxBottom(),
		"",
	}

	if len(deletions) == 0 {
		lines = append(lines, "  (no items recorded)")
	}
	for _, d := range deletions {
		line := fmt.Sprintf("  %-12s %s %6s  %s",
			d.Outcome,
			padRight(DisplayPath(d.Path, b.ScanRoot), 42),
			FormatBytes(d.SizeBytes),
			d.Label,
		)
		if d.Error != "" {
			line += "\n" + paint(dimStyle, "    ! "+d.Error)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
