package artifacts

// Category groups artifacts by what produced them.
type Category string

const (
	BuildCache  Category = "build_cache"
	BuildOutput Category = "build_output"
	ToolCache   Category = "tool_cache"
	TestOutput  Category = "test_output"
)

// Safety is how confidently an artifact can be deleted without review.
type Safety string

const (
	AlwaysSafe  Safety = "always_safe"
	UsuallySafe Safety = "usually_safe"
	Careful     Safety = "careful"
)

// EntryType is the kind of directory entry a pattern applies to.
type EntryType int

const (
	TypeDir EntryType = iota
	TypeFile
)

// Artifact is a build, tool or test byproduct found during a scan.
type Artifact struct {
	Path           string   `json:"path"`
	Category       Category `json:"category"`
	Safety         Safety   `json:"safety"`
	SizeBytes      *int64   `json:"sizeBytes"`      // nil unless measured in deep mode
	PatternMatched string   `json:"patternMatched"` // display name of the matching rule
}

// Summary aggregates artifacts that share a pattern, category and safety level.
type Summary struct {
	Pattern        string     `json:"pattern"`
	Category       Category   `json:"category"`
	Safety         Safety     `json:"safety"`
	Count          int        `json:"count"`
	TotalSizeBytes int64      `json:"totalSizeBytes"`
	Items          []Artifact `json:"items"`
}
