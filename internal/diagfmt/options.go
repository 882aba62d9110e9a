package diagfmt

// PathMode selects how file paths are rendered in output.
type PathMode uint8

const (
	// PathModeAuto keeps short and relative paths as they are and
	// shortens long absolute ones to their basename.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag or manifest value onto a PathMode. The empty
// string counts as "auto".
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "auto", "":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	}
	return "auto"
}

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	// Color toggles ANSI styling.
	Color bool
	// Context is how many source lines surround the primary line.
	Context int8
	// PathMode picks the path form in headers and notes.
	PathMode PathMode
	// Width caps rendered lines in display columns; 0 is unlimited.
	Width uint8
	// ShowNotes renders secondary spans.
	ShowNotes bool
	// ShowFixes renders suggested fixes.
	ShowFixes bool
	// ShowPreview renders before/after lines for each fix edit.
	ShowPreview bool
}

// JSONOpts configures the machine-readable renderer.
type JSONOpts struct {
	// IncludePositions adds line/column fields next to byte offsets.
	IncludePositions bool
	PathMode         PathMode
	// Max caps emitted diagnostics; 0 emits everything the bag holds.
	// Скрытые этим лимитом записи попадают в счётчик truncated.
	Max             int
	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}
