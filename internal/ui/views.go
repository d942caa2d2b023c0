package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderProcessingView renders the main processing view
func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderRunDetails(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#005FAF")).
		Render("Denoiseprep 🎛 - Speech Enhancement Dataset Preprocessor")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("Processing %d pair(s)", m.TotalPairs))

	return title + "\n" + subtitle
}

// renderRunDetails renders the progress box for the running batch
func renderRunDetails(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#005FAF")).
		Padding(0, 1).
		Width(60)

	var content strings.Builder

	if m.ChunkCount > 0 {
		content.WriteString(fmt.Sprintf("Chunk %d/%d (%d pairs)\n", m.ChunkIndex+1, m.ChunkCount, m.ChunkPairs))
	}

	progress := 0.0
	if m.TotalPairs > 0 {
		progress = float64(m.DonePairs) / float64(m.TotalPairs)
	}
	content.WriteString(renderProgressBar(progress, 40))
	content.WriteString("\n\n")

	elapsed := time.Since(m.StartTime).Seconds()
	var remaining float64
	if progress > 0 {
		remaining = (elapsed / progress) - elapsed
	}
	content.WriteString(fmt.Sprintf("⏱  Elapsed: %.1fs | Remaining: ~%.1fs\n", elapsed, remaining))

	content.WriteString(fmt.Sprintf("📦 Records: %d written, %d skipped", m.RecordsWritten, m.RecordsSkipped))
	if m.LastPair != "" {
		content.WriteString(fmt.Sprintf("\n🎙  Last pair: %s", m.LastPair))
	}

	return box.Render(content.String())
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderCompletionSummary renders the final completion summary
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	if m.Err != nil {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000")).
			Render("✗ Processing Failed")
		b.WriteString(header)
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Error: %v\n", m.Err))
		b.WriteString(fmt.Sprintf("Pairs completed before failure: %d/%d\n", m.DonePairs, m.TotalPairs))
		return b.String()
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("✨ Processing Complete!")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(" ✓ %d pairs processed\n", m.DonePairs))
	b.WriteString(fmt.Sprintf("   Records: %d written, %d skipped (already present)\n", m.RecordsWritten, m.RecordsSkipped))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	if m.OutputDir != "" {
		b.WriteString(fmt.Sprintf("Records saved to %s\n", m.OutputDir))
	}
	b.WriteString("Ready for training - one record file per segment.\n")

	return b.String()
}
