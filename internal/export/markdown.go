package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/microqrart/internal/model"
)

// ExportToMarkdown writes the list as a markdown bullet list, one bullet per
// record with its source and date as nested bullets.
func ExportToMarkdown(list model.List, title, filePath string) error {
	if err := os.WriteFile(filePath, []byte(RenderMarkdown(list, title)), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// RenderMarkdown returns the markdown ExportToMarkdown writes
func RenderMarkdown(list model.List, title string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}

	for _, rec := range list {
		writeRecordAsMarkdown(&sb, rec)
	}
	return sb.String()
}

// writeRecordAsMarkdown writes one record. Records without a title still
// get a bullet so the count matches the list.
func writeRecordAsMarkdown(sb *strings.Builder, rec model.Record) {
	text := strings.TrimSpace(rec.Title)
	if text == "" {
		text = "(untitled)"
	}

	sb.WriteString("- ")
	if rec.Source != "" {
		fmt.Fprintf(sb, "[%s](%s)", escape(text), rec.Source)
	} else {
		sb.WriteString(escape(text))
	}
	sb.WriteString("\n")

	if rec.Date != "" {
		sb.WriteString("  - date: ")
		sb.WriteString(rec.Date)
		sb.WriteString("\n")
	}
	if rec.HasImage() {
		fmt.Fprintf(sb, "  - ![QR code](%s)\n", rec.Image)
	}
}

var markdownEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
