package ui

// ChunkStartMsg indicates a new chunk of pairs has started processing.
type ChunkStartMsg struct {
	ChunkIndex int
	ChunkCount int
	Pairs      int
}

// PairDoneMsg indicates one pair has been processed and written.
type PairDoneMsg struct {
	Name     string
	Index    int // position within the full run
	Total    int
	Segments int
	Written  int
	Skipped  int
}

// RunErrorMsg indicates the run aborted with an error.
type RunErrorMsg struct {
	Err error
}

// AllCompleteMsg indicates every pair has been processed.
type AllCompleteMsg struct {
	OutputDir string
}
