// Package ui provides the Bubbletea terminal user interface for denoiseprep
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubbletea model for the batch processing UI. A corpus can
// hold thousands of pairs, so the view shows rolling counters and the
// current chunk rather than a per-file list.
type Model struct {
	TotalPairs int

	ChunkIndex int
	ChunkCount int
	ChunkPairs int

	DonePairs      int
	RecordsWritten int
	RecordsSkipped int
	LastPair       string

	StartTime time.Time
	Done      bool
	OutputDir string
	Err       error

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model for a run over totalPairs pairs.
// Progress arrives via Program.Send from the orchestrator goroutine.
func NewModel(totalPairs int) Model {
	return Model{
		TotalPairs: totalPairs,
		StartTime:  time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case ChunkStartMsg:
		m.ChunkIndex = msg.ChunkIndex
		m.ChunkCount = msg.ChunkCount
		m.ChunkPairs = msg.Pairs

	case PairDoneMsg:
		m.DonePairs++
		m.RecordsWritten += msg.Written
		m.RecordsSkipped += msg.Skipped
		m.LastPair = msg.Name

	case RunErrorMsg:
		m.Err = msg.Err
		m.Done = true
		return m, tea.Quit

	case AllCompleteMsg:
		m.OutputDir = msg.OutputDir
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Width == 0 {
		return "Initializing...\n"
	}
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderProcessingView(m)
}
