package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Field        string // vector field alias to search, e.g. "geovec"
	Prefilter    string // optional FT query prefilter, "*" semantics when empty
	Vector       []float32
	K            int
	ReturnFields []string
	RawScores    bool // keep __<field>_score as-is (L2 distance for geo search)
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
