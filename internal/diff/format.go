package diff

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/microqrart/internal/model"
)

// BuildDiffLines converts a Result into formatted display lines
// This is suitable for both CLI and TUI output
func BuildDiffLines(result Result, old, new model.List, verbose bool) []DiffLine {
	var lines []DiffLine

	switch result.Kind {
	case KindEmpty:
		lines = append(lines, DiffLine{Type: DiffTypeHeader, Content: "No changes"})
		return lines
	case KindUnsupported:
		lines = append(lines, DiffLine{Type: DiffTypeHeader, Content: "Rows were reordered: full reload required"})
		if verbose {
			lines = append(lines, DiffLine{Type: DiffTypeBlank})
			lines = append(lines, formatShifted(old, new)...)
		}
		return lines
	}

	// Deleted rows section
	if len(result.Deletions) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeDeletedSection, Content: "Deleted Rows:"})
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
		for _, row := range result.Deletions {
			lines = append(lines, formatRow(DiffTypeDeletedItem, row, old[row]))
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	// Inserted rows section
	if len(result.Insertions) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeInsertedSection, Content: "Inserted Rows:"})
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
		for _, row := range result.Insertions {
			lines = append(lines, formatRow(DiffTypeInsertedItem, row, new[row]))
			if verbose {
				lines = append(lines, DiffLine{
					Type:    DiffTypeItemDetail,
					Content: fmt.Sprintf("SOURCE: %s", truncateText(new[row].Source, 60)),
					Indent:  2,
				})
			}
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	// Updated rows section
	if len(result.Updates) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeUpdatedSection, Content: "Updated Rows:"})
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
		for _, row := range result.Updates {
			lines = append(lines, formatRow(DiffTypeUpdatedItem, row, new[row]))
			lines = append(lines, formatFieldChanges(old[row], new[row])...)
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: "=== Summary ==="})
	lines = append(lines, DiffLine{
		Type: DiffTypeSummary,
		Content: fmt.Sprintf("  %d updated, %d inserted, %d deleted",
			len(result.Updates), len(result.Insertions), len(result.Deletions)),
	})

	return lines
}

// formatRow creates the header line of a single row operation
func formatRow(lineType DiffLineType, row int, rec model.Record) DiffLine {
	return DiffLine{
		Type:    lineType,
		Content: fmt.Sprintf("[%d] %s: %s", row, rec.ID, truncateText(rec.Title, 60)),
		Indent:  1,
	}
}

// formatFieldChanges lists every field that differs between two versions of a record
func formatFieldChanges(old, new model.Record) []DiffLine {
	var lines []DiffLine
	add := func(label, from, to string) {
		if from == to {
			return
		}
		lines = append(lines, DiffLine{
			Type:    DiffTypeItemDetail,
			Content: fmt.Sprintf("%s: %s → %s", label, truncateText(from, 40), truncateText(to, 40)),
			Indent:  2,
		})
	}

	add("TITLE", old.Title, new.Title)
	add("SOURCE", old.Source, new.Source)
	add("DATE", old.Date, new.Date)
	add("IMAGE", old.Image, new.Image)
	return lines
}

// formatShifted lists retained records whose index differs between the snapshots
func formatShifted(old, new model.List) []DiffLine {
	var lines []DiffLine
	for j, rec := range new {
		i := old.IndexOf(rec.ID)
		if i < 0 || i == j {
			continue
		}
		lines = append(lines, DiffLine{
			Type:    DiffTypeItemDetail,
			Content: fmt.Sprintf("%s: %s  %d → %d", rec.ID, truncateText(rec.Title, 40), i, j),
			Indent:  1,
		})
	}
	return lines
}

// truncateText limits text length for display
func truncateText(text string, maxLen int) string {
	// Handle multi-line text
	lines := strings.Split(text, "\n")
	text = lines[0]
	if len(lines) > 1 {
		text += " ..."
	}

	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return text
}
