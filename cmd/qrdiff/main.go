// Command qrdiff compares two record snapshots and prints the row
// operations the list view would apply.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pstuifzand/microqrart/internal/diff"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "qrdiff",
	Short: "Inspect how the QR code list reconciles snapshots",
}

var compareCmd = &cobra.Command{
	Use:   "compare <old.json> <new.json>",
	Short: "Show the row operations between two QR code snapshots",
	Long: `compare reads two snapshots (a records file, an API response or a bare
JSON array) and prints what the list would do to move from the first to the
second: delete, insert and update rows in place, or reload everything when
rows were reordered.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	compareCmd.Flags().Bool("json", false, "print the result as JSON")
	compareCmd.Flags().BoolP("verbose", "v", false, "show sources and reordered rows")
	compareCmd.Flags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.AddCommand(compareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// jsonResult is the --json output
type jsonResult struct {
	Kind       string `json:"kind"`
	Deletions  []int  `json:"deletions"`
	Insertions []int  `json:"insertions"`
	Updates    []int  `json:"updates"`
	OldCount   int    `json:"old_count"`
	NewCount   int    `json:"new_count"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	colorFlag, _ := cmd.Flags().GetString("color")

	oldList, err := storage.ReadRecords(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	newList, err := storage.ReadRecords(args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	result := diff.Reconcile(oldList, newList)

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, result, oldList, newList)
	}

	switch colorFlag {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
	writeLines(out, diff.BuildDiffLines(result, oldList, newList, verbose))
	return nil
}

// isTerminal reports whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, result diff.Result, oldList, newList model.List) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Kind:       result.Kind.String(),
		Deletions:  nonNil(result.Deletions),
		Insertions: nonNil(result.Insertions),
		Updates:    nonNil(result.Updates),
		OldCount:   len(oldList),
		NewCount:   len(newList),
	})
}

func nonNil(rows []int) []int {
	if rows == nil {
		return []int{}
	}
	return rows
}

var (
	headerColor   = color.New(color.Bold)
	deletedColor  = color.New(color.FgRed)
	insertedColor = color.New(color.FgGreen)
	updatedColor  = color.New(color.FgYellow)
	sectionColor  = color.New(color.FgCyan, color.Bold)
	detailColor   = color.New(color.Faint)
)

func writeLines(w io.Writer, lines []diff.DiffLine) {
	for _, line := range lines {
		text := fmt.Sprintf("%*s%s", line.Indent*2, "", line.Content)

		var c *color.Color
		switch line.Type {
		case diff.DiffTypeHeader, diff.DiffTypeSummary:
			c = headerColor
		case diff.DiffTypeDeletedSection, diff.DiffTypeInsertedSection, diff.DiffTypeUpdatedSection:
			c = sectionColor
		case diff.DiffTypeDeletedItem:
			c = deletedColor
		case diff.DiffTypeInsertedItem:
			c = insertedColor
		case diff.DiffTypeUpdatedItem:
			c = updatedColor
		case diff.DiffTypeItemDetail:
			c = detailColor
		}

		if c == nil {
			fmt.Fprintln(w, text)
			continue
		}
		c.Fprintln(w, text)
	}
}
