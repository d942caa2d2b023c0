package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/speechforge/denoiseprep/internal/batch"
	"github.com/speechforge/denoiseprep/internal/cli"
	"github.com/speechforge/denoiseprep/internal/logging"
	"github.com/speechforge/denoiseprep/internal/processor"
	"github.com/speechforge/denoiseprep/internal/record"
	"github.com/speechforge/denoiseprep/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Config  string `short:"c" type:"path" help:"Path to YAML config file (optional)"`

	CleanDir string `arg:"" name:"clean-dir" help:"Directory of clean reference WAVs" type:"existingdir" optional:""`
	NoisyDir string `arg:"" name:"noisy-dir" help:"Directory of matching noisy WAVs" type:"existingdir" optional:""`

	Out    string `short:"o" help:"Base directory for record output" default:"records"`
	Prefix string `help:"Record filename prefix, e.g. train or test" default:"train"`

	SampleRate int     `help:"Target sample rate in Hz" default:"16000"`
	Segment    float64 `help:"Segment length in seconds" default:"2.0"`
	Normalize  string  `help:"Amplitude normalization scheme" enum:"peak,rms,standard,none" default:"peak"`
	SegNorm    bool    `help:"Normalize each segment instead of the full waveform"`

	FFT         bool    `help:"Write STFT records instead of waveform records"`
	WinLength   int     `help:"STFT window and FFT length" default:"512"`
	HopLength   int     `help:"STFT hop length" default:"128"`
	Center      bool    `help:"Center STFT frames with reflect padding" default:"true" negatable:""`
	PhaseAware  bool    `help:"Add the phase-aware scaled clean magnitude to records"`
	TrimSilence bool    `help:"Trim shared silence from each pair before segmenting"`
	TopDB       float64 `help:"Silence threshold below peak in dB" default:"20"`
	Split       float64 `help:"Train fraction recorded in the output directory name" default:"0.9"`

	Parallel bool `short:"p" help:"Process pairs on a worker pool"`
	Debug    bool `help:"Limit the run to the first 100 pairs"`
	NoUI     bool `help:"Disable the interactive UI, log progress instead"`
	Logs     bool `help:"Write a run report into the record directory"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("denoiseprep"),
		kong.Description("Speech enhancement dataset preprocessor"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if cliArgs.CleanDir == "" || cliArgs.NoisyDir == "" {
		cli.PrintError("Both a clean and a noisy corpus directory are required")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	cfg, err := buildConfig(cliArgs, setFlags(ctx))
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	pairs, err := collectPairs(cliArgs.CleanDir, cliArgs.NoisyDir)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	if len(pairs) == 0 {
		cli.PrintError("No WAV files found in the clean corpus")
		os.Exit(1)
	}

	outDir := cfg.OutputDir(cliArgs.Debug)
	writer, err := record.NewWriter(outDir, cliArgs.Prefix)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	orch := &batch.Orchestrator{
		Config:   cfg,
		Parallel: cliArgs.Parallel,
		Debug:    cliArgs.Debug,
		Write: func(res *processor.PairResult) (int, int, error) {
			before := writer.Written()
			skippedBefore := writer.Skipped()
			if err := writer.WriteResult(res); err != nil {
				return 0, 0, err
			}
			return writer.Written() - before, writer.Skipped() - skippedBefore, nil
		},
	}

	startTime := time.Now()
	var runErr error
	if cliArgs.NoUI {
		runErr = runHeadless(orch, pairs, cliArgs, outDir)
	} else {
		runErr = runWithUI(orch, pairs, outDir)
	}

	pairCount := len(pairs)
	if cliArgs.Debug && pairCount > batch.DebugPairLimit {
		pairCount = batch.DebugPairLimit
	}

	if cliArgs.Logs && runErr == nil {
		reportData := logging.ReportData{
			CleanDir:       cliArgs.CleanDir,
			NoisyDir:       cliArgs.NoisyDir,
			OutputDir:      outDir,
			Prefix:         cliArgs.Prefix,
			Config:         cfg,
			Parallel:       cliArgs.Parallel,
			Workers:        batch.Workers(),
			Debug:          cliArgs.Debug,
			StartTime:      startTime,
			EndTime:        time.Now(),
			Pairs:          pairCount,
			RecordsWritten: writer.Written(),
			RecordsSkipped: writer.Skipped(),
		}
		if err := logging.GenerateReport(reportData); err != nil {
			cli.PrintError(fmt.Sprintf("Report generation failed: %v", err))
		}
	}

	if runErr != nil {
		cli.PrintError(runErr.Error())
		os.Exit(1)
	}
}

// setFlags returns the names of flags the user passed on the command line,
// as opposed to flags holding their declared defaults.
func setFlags(ctx *kong.Context) map[string]bool {
	set := make(map[string]bool)
	for _, f := range ctx.Model.Node.Flags {
		if f.Set {
			set[f.Name] = true
		}
	}
	return set
}

// buildConfig assembles the pipeline configuration from defaults, the
// optional config file, and command-line flags. A flag only overrides the
// file when the user actually passed it.
func buildConfig(args *CLI, set map[string]bool) (processor.Config, error) {
	cfg := processor.DefaultConfig()
	if args.Config != "" {
		var err error
		if cfg, err = cfg.WithFile(args.Config); err != nil {
			return cfg, err
		}
	}

	if set["sample-rate"] {
		cfg.SampleRate = args.SampleRate
	}
	if set["segment"] {
		cfg.Segment = args.Segment
	}
	if set["normalize"] {
		cfg.Normalize = args.Normalize
	}
	if set["seg-norm"] {
		cfg.SegmentNormalization = args.SegNorm
	}
	if set["fft"] {
		cfg.FFT = args.FFT
	}
	if set["win-length"] {
		cfg.WinLength = args.WinLength
	}
	if set["hop-length"] {
		cfg.HopLength = args.HopLength
	}
	if set["center"] {
		cfg.Center = args.Center
	}
	if set["phase-aware"] {
		cfg.PhaseAware = args.PhaseAware
	}
	if set["trim-silence"] {
		cfg.TrimSilence = args.TrimSilence
	}
	if set["top-db"] {
		cfg.TopDB = args.TopDB
	}
	if set["split"] {
		cfg.Split = args.Split
	}
	if set["out"] {
		cfg.SavePath = args.Out
	}

	return cfg, cfg.Validate()
}

// collectPairs enumerates both corpora in sorted order and pairs them by
// position.
func collectPairs(cleanDir, noisyDir string) ([]processor.FilePair, error) {
	clean, err := listWAVs(cleanDir)
	if err != nil {
		return nil, err
	}
	noisy, err := listWAVs(noisyDir)
	if err != nil {
		return nil, err
	}
	return processor.PairFiles(clean, noisy)
}

// listWAVs returns the sorted .wav paths directly inside dir.
func listWAVs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// runWithUI drives the orchestrator behind a Bubbletea program, sending
// progress messages from a background goroutine.
func runWithUI(orch *batch.Orchestrator, pairs []processor.FilePair, outDir string) error {
	total := len(pairs)
	if orch.Debug && total > batch.DebugPairLimit {
		total = batch.DebugPairLimit
	}
	chunkCount := (total + batch.ChunkSize - 1) / batch.ChunkSize

	model := ui.NewModel(total)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lastChunk := -1
	orch.OnProgress = func(prog batch.Progress) {
		chunk := prog.Index / batch.ChunkSize
		if chunk != lastChunk {
			lastChunk = chunk
			chunkPairs := batch.ChunkSize
			if (chunk+1)*batch.ChunkSize > total {
				chunkPairs = total - chunk*batch.ChunkSize
			}
			p.Send(ui.ChunkStartMsg{ChunkIndex: chunk, ChunkCount: chunkCount, Pairs: chunkPairs})
		}
		p.Send(ui.PairDoneMsg{
			Name:     prog.Pair.Name(),
			Index:    prog.Index,
			Total:    prog.Total,
			Segments: prog.Segments,
			Written:  prog.Written,
			Skipped:  prog.Skipped,
		})
	}

	done := make(chan error, 1)
	go func() {
		err := orch.Run(ctx, pairs)
		if err != nil {
			p.Send(ui.RunErrorMsg{Err: err})
		} else {
			p.Send(ui.AllCompleteMsg{OutputDir: outDir})
		}
		done <- err
	}()

	_, uiErr := p.Run()

	// Quitting the UI early must stop the run. Cancel and wait for the
	// orchestrator to drain before reading its error.
	cancel()
	runErr := <-done

	if uiErr != nil {
		return fmt.Errorf("ui error: %w", uiErr)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// runHeadless drives the orchestrator with structured log output only.
func runHeadless(orch *batch.Orchestrator, pairs []processor.FilePair, args *CLI, outDir string) error {
	logger := logging.NewLogger(args.Debug)
	defer logger.Sync()

	logger.Info("starting run",
		zap.Int("pairs", len(pairs)),
		zap.String("output", outDir),
		zap.Bool("parallel", args.Parallel),
		zap.Int("workers", batch.Workers()),
	)

	orch.OnProgress = func(prog batch.Progress) {
		logger.Debug("pair done",
			zap.String("name", prog.Pair.Name()),
			zap.Int("index", prog.Index),
			zap.Int("total", prog.Total),
			zap.Int("segments", prog.Segments),
			zap.Int("written", prog.Written),
			zap.Int("skipped", prog.Skipped),
		)
		if (prog.Index+1)%batch.ChunkSize == 0 || prog.Index+1 == prog.Total {
			logger.Info("progress",
				zap.Int("done", prog.Index+1),
				zap.Int("total", prog.Total),
			)
		}
	}

	if err := orch.Run(context.Background(), pairs); err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}

	logger.Info("run complete", zap.String("output", outDir))
	return nil
}
