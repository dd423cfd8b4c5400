package constants

const (
	MAX_PAGE_SIZE            = 100
	DEFAULT_PLACEMENTS_LIMIT = 20
	DEFAULT_OFFSET           = uint64(0)

	// MAX_PARENT_DEPTH bounds the parent chain walked to resolve a location
	MAX_PARENT_DEPTH = 16
)
