package diff

// Kind identifies which variant a Result holds
type Kind int

const (
	// KindEmpty means both snapshots hold the same records in the same order
	KindEmpty Kind = iota
	// KindUnsupported means retained records changed their relative order,
	// or a record whose content changed ended up at a different index. Rows
	// that only shift because others were deleted or inserted do not count.
	// The caller must discard the result and reload every row.
	KindUnsupported
	// KindOperations means the row operations in the Result apply
	KindOperations
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindUnsupported:
		return "unsupported"
	case KindOperations:
		return "operations"
	default:
		return "unknown"
	}
}

// IndexPath addresses a row within a sectioned list
type IndexPath struct {
	Section int `json:"section"`
	Row     int `json:"row"`
}

// Result contains the row operations that turn an old snapshot into a new one.
//
// Deletions index into the old list, Insertions and Updates into the new
// list. Each slice is sorted ascending and no row appears in more than one
// role. The Paths fields carry the same operations addressed by section and
// are filled by both Reconcile (section 0) and ReconcileSections.
type Result struct {
	Kind       Kind  `json:"kind"`
	Deletions  []int `json:"deletions,omitempty"`
	Insertions []int `json:"insertions,omitempty"`
	Updates    []int `json:"updates,omitempty"`

	DeletedPaths  []IndexPath `json:"deleted_paths,omitempty"`
	InsertedPaths []IndexPath `json:"inserted_paths,omitempty"`
	UpdatedPaths  []IndexPath `json:"updated_paths,omitempty"`
}

// Empty returns a result signalling that nothing changed
func Empty() Result {
	return Result{Kind: KindEmpty}
}

// Unsupported returns a result signalling that a full reload is required
func Unsupported() Result {
	return Result{Kind: KindUnsupported}
}

// IsEmpty reports whether the result asks for no work at all
func (r Result) IsEmpty() bool {
	return r.Kind == KindEmpty
}

// IsUnsupported reports whether the caller must fall back to a full reload
func (r Result) IsUnsupported() bool {
	return r.Kind == KindUnsupported
}

// Count returns the total number of row operations
func (r Result) Count() int {
	return len(r.DeletedPaths) + len(r.InsertedPaths) + len(r.UpdatedPaths)
}

// DiffLineType indicates the type of diff line for rendering
type DiffLineType int

const (
	DiffTypeHeader DiffLineType = iota
	DiffTypeDeletedSection
	DiffTypeInsertedSection
	DiffTypeUpdatedSection
	DiffTypeDeletedItem
	DiffTypeInsertedItem
	DiffTypeUpdatedItem
	DiffTypeItemDetail
	DiffTypeSummary
	DiffTypeBlank
)

// DiffLine represents a rendered line in diff output
type DiffLine struct {
	Type    DiffLineType
	Content string
	Indent  int // Indentation level
}
