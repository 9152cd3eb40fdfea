// Package model contains the QR code records shown by the list screens
package model

// Record represents a single QR code entry in the list
type Record struct {
	ID     string `json:"id"`
	Image  string `json:"image,omitempty"` // Remote bitmap reference, empty when there is none
	Title  string `json:"title"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// Equal reports whether every field of both records matches
func (r Record) Equal(other Record) bool {
	return r == other
}

// HasImage returns true when the record references a remote image
func (r Record) HasImage() bool {
	return r.Image != ""
}

// List is an ordered, id-unique sequence of records. Position is the row index.
type List []Record

// Clone returns a copy of the list that shares no backing array with l
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// IDs returns the record ids in list order
func (l List) IDs() []string {
	ids := make([]string, len(l))
	for i, r := range l {
		ids[i] = r.ID
	}
	return ids
}

// IndexOf returns the position of the record with the given id, or -1
func (l List) IndexOf(id string) int {
	for i, r := range l {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// DuplicateIDs returns every id that occurs more than once, in order of first repeat
func (l List) DuplicateIDs() []string {
	seen := make(map[string]int, len(l))
	var dups []string
	for _, r := range l {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}

// Without returns a new list with the record at index removed
func (l List) Without(index int) List {
	if index < 0 || index >= len(l) {
		return l.Clone()
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...)
}

// WithRecord returns a new list with the record at index replaced
func (l List) WithRecord(index int, rec Record) List {
	out := l.Clone()
	if index >= 0 && index < len(out) {
		out[index] = rec
	}
	return out
}

// Equal reports whether both lists hold equal records in the same order
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Section groups records under a header. The profile screen uses a single
// section with an empty header.
type Section struct {
	Header string `json:"header"`
	Items  List   `json:"items"`
}

// SingleSection wraps a list in the one-section layout
func SingleSection(items List) []Section {
	return []Section{{Header: "", Items: items}}
}

// APIResponse is the payload returned by the QR code list endpoint
type APIResponse struct {
	Result string   `json:"result"`
	Data   []Record `json:"data"`
}

// ResultSuccess is the Result value of a successful APIResponse
const ResultSuccess = "success"
