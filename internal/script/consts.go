package script

const (
	// ============================================================================
	// Directives
	// ============================================================================

	// DirWindow sets the overall address window: window <start> <end>
	DirWindow = "window"

	// DirCapacity sets the region capacity: capacity <n>
	DirCapacity = "capacity"

	// DirGap selects the free-space acceptance test: gap exact|span
	DirGap = "gap"

	// DirInsert records a caller-chosen range: insert <start> <end> [tag]
	DirInsert = "insert"

	// DirReserve finds and records a range: reserve <pages> front|back [tag]
	DirReserve = "reserve"

	// DirFind finds a range without recording it: find <pages> front|back
	DirFind = "find"

	// DirExpectError asserts that the preceding step failed: expect-error <kind>
	DirExpectError = "expect-error"

	// ============================================================================
	// Tokens
	// ============================================================================

	// CommentPrefix marks a comment; the rest of the line is ignored
	CommentPrefix = "#"

	// DirFront searches from the low end
	DirFront = "front"

	// DirBack searches from the high end
	DirBack = "back"

	// ============================================================================
	// Defaults and Limits
	// ============================================================================

	// DefaultCapacity is used when a script has no capacity directive
	DefaultCapacity = 16

	// ScannerMaxLineSize bounds a single script line
	ScannerMaxLineSize = 64 * 1024
)
