// Package diff reconciles two snapshots of the QR code list into the row
// operations a list renderer applies in one batch.
package diff

import (
	"github.com/pstuifzand/microqrart/internal/model"
)

// Reconcile compares two snapshots of a flat list and returns the row
// operations that turn old into new.
//
// Records are matched by ID. Records missing from new are deletions at their
// old index, records missing from old are insertions at their new index, and
// retained records whose value changed are updates. Reordering is never
// expressed: if the retained records do not appear in the same relative
// order in both lists, or a changed record sits at a different index in new
// than in old, the result is Unsupported and the caller reloads every row.
//
// Reconcile never mutates its arguments. Duplicate IDs within one list are a
// caller error; the last occurrence of an ID wins.
func Reconcile(old, new model.List) Result {
	if len(old) == 0 && len(new) == 0 {
		return Empty()
	}

	oldPos := positions(old)
	newPos := positions(new)

	var result Result

	// Deletions first; they depend only on membership in new.
	// retainedRank is the index a retained record would have in old once the
	// deletions are applied.
	retainedRank := make(map[string]int, len(old))
	for i, rec := range old {
		if oldPos[rec.ID] != i {
			continue
		}
		if _, ok := newPos[rec.ID]; !ok {
			result.Deletions = append(result.Deletions, i)
			continue
		}
		retainedRank[rec.ID] = i - len(result.Deletions)
	}

	for j, rec := range new {
		if newPos[rec.ID] != j {
			continue
		}
		i, ok := oldPos[rec.ID]
		if !ok {
			result.Insertions = append(result.Insertions, j)
			continue
		}
		if retainedRank[rec.ID] != j-len(result.Insertions) {
			return Unsupported()
		}
		if !old[i].Equal(rec) {
			if i != j {
				return Unsupported()
			}
			result.Updates = append(result.Updates, j)
		}
	}

	if len(result.Deletions) == 0 && len(result.Insertions) == 0 && len(result.Updates) == 0 {
		return Empty()
	}

	result.Kind = KindOperations
	result.DeletedPaths = toPaths(0, result.Deletions)
	result.InsertedPaths = toPaths(0, result.Insertions)
	result.UpdatedPaths = toPaths(0, result.Updates)
	return result
}

// ReconcileSections reconciles sectioned snapshots one section at a time.
//
// Sections are matched by position and header. A change in the number of
// sections or in any header cannot be expressed as row operations and
// yields Unsupported, as does a record that moved to another section or an
// Unsupported result for any single section.
// The flat Deletions/Insertions/Updates fields are only filled when there is
// exactly one section; multi-section callers read the Paths fields.
func ReconcileSections(old, new []model.Section) Result {
	if len(old) != len(new) {
		return Unsupported()
	}
	if len(old) == 1 && old[0].Header == new[0].Header {
		return Reconcile(old[0].Items, new[0].Items)
	}

	oldSection := make(map[string]int)
	for s, section := range old {
		if section.Header != new[s].Header {
			return Unsupported()
		}
		for _, rec := range section.Items {
			oldSection[rec.ID] = s
		}
	}
	for s, section := range new {
		for _, rec := range section.Items {
			if prev, ok := oldSection[rec.ID]; ok && prev != s {
				return Unsupported()
			}
		}
	}

	var result Result
	for s := range old {
		sectionResult := Reconcile(old[s].Items, new[s].Items)
		switch sectionResult.Kind {
		case KindUnsupported:
			return Unsupported()
		case KindEmpty:
			continue
		}

		result.DeletedPaths = append(result.DeletedPaths, toPaths(s, sectionResult.Deletions)...)
		result.InsertedPaths = append(result.InsertedPaths, toPaths(s, sectionResult.Insertions)...)
		result.UpdatedPaths = append(result.UpdatedPaths, toPaths(s, sectionResult.Updates)...)
	}

	if result.Count() == 0 {
		return Empty()
	}
	result.Kind = KindOperations
	return result
}

// positions maps every ID to its index in the list
func positions(list model.List) map[string]int {
	pos := make(map[string]int, len(list))
	for i, rec := range list {
		pos[rec.ID] = i
	}
	return pos
}

func toPaths(section int, rows []int) []IndexPath {
	if len(rows) == 0 {
		return nil
	}
	paths := make([]IndexPath, len(rows))
	for i, row := range rows {
		paths[i] = IndexPath{Section: section, Row: row}
	}
	return paths
}
