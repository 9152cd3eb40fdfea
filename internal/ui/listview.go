package ui

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/microqrart/internal/diff"
	"github.com/pstuifzand/microqrart/internal/imageload"
	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/observable"
)

const (
	// RowHeight is the number of screen lines one record takes
	RowHeight    = 4
	thumbWidth   = 8
	thumbHeight  = 3
	thumbPadding = 2
)

// ImageSource provides the thumbnail of a record
type ImageSource interface {
	Load(ctx context.Context, ref string) *observable.Property[imageload.Image]
}

// ApplyStats counts how snapshots were applied
type ApplyStats struct {
	Reloads  int // full reloads, including the first apply
	Batches  int // incremental batches
	Skipped  int // snapshots identical to the shown one
	Deleted  int
	Inserted int
	Updated  int
}

type changeKind int

const (
	changeNone changeKind = iota
	changeInserted
	changeUpdated
)

// row is the render state of one record
type row struct {
	record    model.Record
	change    changeKind
	changedAt time.Time
	image     *observable.Property[imageload.Image]
}

// ListView renders sectioned records and applies new snapshots as row
// batches when possible
type ListView struct {
	ctx       context.Context
	images    ImageSource
	highlight time.Duration
	now       func() time.Time
	debug     bool

	loaded   bool
	sections []model.Section
	rows     [][]*row

	selected int
	offset   int
	stats    ApplyStats
}

// NewListView creates an empty list view. images may be nil, in which case
// every row shows the placeholder.
func NewListView(ctx context.Context, images ImageSource, highlight time.Duration) *ListView {
	return &ListView{
		ctx:       ctx,
		images:    images,
		highlight: highlight,
		now:       time.Now,
	}
}

// SetDebug enables logging of every reconcile result
func (v *ListView) SetDebug(debug bool) {
	v.debug = debug
}

// SetHighlightDuration changes how long changed rows stay highlighted
func (v *ListView) SetHighlightDuration(d time.Duration) {
	v.highlight = d
}

// Stats returns the apply counters
func (v *ListView) Stats() ApplyStats {
	return v.stats
}

// Sections returns the snapshot currently shown
func (v *ListView) Sections() []model.Section {
	return v.sections
}

// Apply shows sections. The first snapshot and any snapshot the reconciler
// cannot express as row operations replace every row; otherwise only the
// deleted, inserted and updated rows change.
func (v *ListView) Apply(sections []model.Section) diff.Result {
	if !v.loaded {
		v.reload(sections)
		return diff.Unsupported()
	}

	result := diff.ReconcileSections(v.sections, sections)
	if v.debug {
		log.Printf("Reconcile result:\n%s", spew.Sdump(result))
	}

	switch result.Kind {
	case diff.KindEmpty:
		v.stats.Skipped++
	case diff.KindUnsupported:
		v.reload(sections)
	case diff.KindOperations:
		if !v.batch(sections, result) {
			log.Printf("Row batch did not match the new snapshot, reloading")
			v.reload(sections)
		}
	}
	return result
}

func (v *ListView) reload(sections []model.Section) {
	selectedID := v.selectedID()

	rows := make([][]*row, len(sections))
	for s, section := range sections {
		rows[s] = make([]*row, len(section.Items))
		for i, rec := range section.Items {
			rows[s][i] = v.newRow(rec, changeNone)
		}
	}

	v.commit(sections, rows, selectedID)
	v.loaded = true
	v.stats.Reloads++
}

// batch applies the row operations. It reports false, leaving the view
// untouched, when the operations do not turn the shown rows into sections.
func (v *ListView) batch(sections []model.Section, result diff.Result) bool {
	if len(sections) != len(v.rows) {
		return false
	}
	selectedID := v.selectedID()
	now := v.now()

	rows := make([][]*row, len(v.rows))
	for s := range v.rows {
		rows[s] = append([]*row(nil), v.rows[s]...)
	}

	deletions := append([]diff.IndexPath(nil), result.DeletedPaths...)
	sort.Slice(deletions, func(a, b int) bool {
		if deletions[a].Section != deletions[b].Section {
			return deletions[a].Section < deletions[b].Section
		}
		return deletions[a].Row > deletions[b].Row
	})
	for _, p := range deletions {
		if p.Row < 0 || p.Row >= len(rows[p.Section]) {
			return false
		}
		rows[p.Section] = append(rows[p.Section][:p.Row], rows[p.Section][p.Row+1:]...)
	}

	for _, p := range result.InsertedPaths {
		if p.Row < 0 || p.Row > len(rows[p.Section]) || p.Row >= len(sections[p.Section].Items) {
			return false
		}
		r := v.newRow(sections[p.Section].Items[p.Row], changeInserted)
		r.changedAt = now
		section := rows[p.Section]
		section = append(section, nil)
		copy(section[p.Row+1:], section[p.Row:])
		section[p.Row] = r
		rows[p.Section] = section
	}

	for s := range rows {
		if len(rows[s]) != len(sections[s].Items) {
			return false
		}
	}

	for _, p := range result.UpdatedPaths {
		old := rows[p.Section][p.Row]
		rec := sections[p.Section].Items[p.Row]
		updated := &row{record: rec, change: changeUpdated, changedAt: now, image: old.image}
		if old.record.Image != rec.Image {
			updated.image = v.loadImage(rec.Image)
		}
		rows[p.Section][p.Row] = updated
	}

	// Unchanged rows keep their state but point at the new snapshot's record
	for s := range rows {
		for i, r := range rows[s] {
			if r.record.ID != sections[s].Items[i].ID {
				return false
			}
			r.record = sections[s].Items[i]
		}
	}

	v.commit(sections, rows, selectedID)
	v.stats.Batches++
	v.stats.Deleted += len(result.DeletedPaths)
	v.stats.Inserted += len(result.InsertedPaths)
	v.stats.Updated += len(result.UpdatedPaths)
	return true
}

// commit swaps in the new snapshot and keeps the selection on the same
// record when it is still shown
func (v *ListView) commit(sections []model.Section, rows [][]*row, selectedID string) {
	v.sections = sections
	v.rows = rows

	if selectedID != "" {
		i := 0
		for _, section := range rows {
			for _, r := range section {
				if r.record.ID == selectedID {
					v.selected = i
					return
				}
				i++
			}
		}
	}
	v.clampSelection()
}

func (v *ListView) newRow(rec model.Record, change changeKind) *row {
	return &row{record: rec, change: change, image: v.loadImage(rec.Image)}
}

func (v *ListView) loadImage(ref string) *observable.Property[imageload.Image] {
	if v.images == nil || ref == "" {
		return observable.NewProperty(imageload.Placeholder())
	}
	return v.images.Load(v.ctx, ref)
}

// Len returns the number of rows across all sections
func (v *ListView) Len() int {
	n := 0
	for _, section := range v.rows {
		n += len(section)
	}
	return n
}

func (v *ListView) rowAt(index int) (*row, bool) {
	for _, section := range v.rows {
		if index < len(section) {
			if index < 0 {
				return nil, false
			}
			return section[index], true
		}
		index -= len(section)
	}
	return nil, false
}

func (v *ListView) selectedID() string {
	if r, ok := v.rowAt(v.selected); ok {
		return r.record.ID
	}
	return ""
}

// Selected returns the selected record and its index across sections
func (v *ListView) Selected() (model.Record, int, bool) {
	r, ok := v.rowAt(v.selected)
	if !ok {
		return model.Record{}, -1, false
	}
	return r.record, v.selected, true
}

// Select moves the selection to index, clamped to the rows
func (v *ListView) Select(index int) {
	v.selected = index
	v.clampSelection()
}

// MoveDown selects the next row
func (v *ListView) MoveDown() {
	v.Select(v.selected + 1)
}

// MoveUp selects the previous row
func (v *ListView) MoveUp() {
	v.Select(v.selected - 1)
}

func (v *ListView) clampSelection() {
	if n := v.Len(); v.selected >= n {
		v.selected = n - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// Animating reports whether a highlight is still fading
func (v *ListView) Animating() bool {
	now := v.now()
	for _, section := range v.rows {
		for _, r := range section {
			if r.change != changeNone && now.Sub(r.changedAt) < v.highlight {
				return true
			}
		}
	}
	return false
}

// Render draws the rows into lines [top, top+height)
func (v *ListView) Render(screen *Screen, top, height int) {
	width := screen.GetWidth()
	for y := top; y < top+height; y++ {
		screen.FillLine(0, y, width, screen.BackgroundStyle())
	}

	if v.Len() == 0 {
		msg := "No QR codes yet"
		if !v.loaded {
			msg = "Loading..."
		}
		screen.DrawString((width-StringWidth(msg))/2, top+height/2, msg, screen.RowSourceStyle())
		return
	}

	visible := height / RowHeight
	if visible < 1 {
		visible = 1
	}
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}

	now := v.now()
	y := top
	index := 0
	for s, section := range v.rows {
		if header := v.sections[s].Header; header != "" {
			if index >= v.offset && y < top+height {
				screen.DrawStringLimited(1, y, header, width-2, screen.HeaderStyle())
				y++
			}
		}
		for _, r := range section {
			if index >= v.offset && y+RowHeight <= top+height {
				v.renderRow(screen, r, y, width, index == v.selected, now)
				y += RowHeight
			}
			index++
		}
	}
}

func (v *ListView) renderRow(screen *Screen, r *row, y, width int, selected bool, now time.Time) {
	bg := screen.BackgroundStyle()
	title := screen.RowTitleStyle()
	source := screen.RowSourceStyle()
	date := screen.RowDateStyle()

	if r.change != changeNone && v.highlight > 0 {
		if elapsed := now.Sub(r.changedAt); elapsed < v.highlight {
			color := screen.Theme.Colors.RowInserted
			if r.change == changeUpdated {
				color = screen.Theme.Colors.RowUpdated
			}
			bg = screen.RowHighlightStyle(color, float64(elapsed)/float64(v.highlight))
			_, bgColor, _ := bg.Decompose()
			title = title.Background(bgColor)
			source = source.Background(bgColor)
			date = date.Background(bgColor)
		}
	}
	if selected {
		bg = screen.RowSelectedStyle()
		_, bgColor, _ := bg.Decompose()
		title = bg
		source = source.Background(bgColor)
		date = date.Background(bgColor)
	}

	for line := 0; line < RowHeight-1; line++ {
		screen.FillLine(0, y+line, width, bg)
	}

	img := r.image.Value()
	renderThumb(screen, thumbPadding, y, img, screen.ImageStyle(img.Loaded()))

	textX := thumbPadding + thumbWidth + 2
	textWidth := width - textX - 1
	dateWidth := StringWidth(r.record.Date)
	if textWidth-dateWidth-1 > 0 {
		screen.DrawStringLimited(textX, y, r.record.Title, textWidth-dateWidth-1, title)
		screen.DrawString(width-1-dateWidth, y, r.record.Date, date)
	} else {
		screen.DrawStringLimited(textX, y, r.record.Title, textWidth, title)
	}
	screen.DrawStringLimited(textX, y+1, r.record.Source, textWidth, source)

	sep := screen.SeparatorStyle()
	for x := thumbPadding; x < width-1; x++ {
		screen.SetCell(x, y+RowHeight-1, '─', sep)
	}
}

// renderThumb draws the placeholder pattern with half blocks, two pattern
// rows per screen line
func renderThumb(screen *Screen, x, y int, img imageload.Image, style tcell.Style) {
	grid := imageload.PlaceholderPattern()
	for line := 0; line < thumbHeight; line++ {
		for col := 0; col < thumbWidth; col++ {
			top := grid[line*2][col]
			bottom := line*2+1 < imageload.PlaceholderSize && grid[line*2+1][col]
			ch := ' '
			switch {
			case top && bottom:
				ch = '█'
			case top:
				ch = '▀'
			case bottom:
				ch = '▄'
			}
			if img.Loaded() && ch == ' ' {
				ch = '·'
			}
			screen.SetCell(x+col, y+line, ch, style)
		}
	}
}
