package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"astscript/internal/cache"
	"astscript/internal/config"
	"astscript/internal/filewalker"
	"astscript/internal/interpolation"
	"astscript/internal/scenario"
	"astscript/internal/script"
	"astscript/internal/textutil"
	"astscript/internal/translation"
	"astscript/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "astscript",
		Short: "Visual novel script AST tool: extract, prune and merge scenario text",
		Long: `astscript parses the textual AST dumps a visual-novel engine produces
for its script files. It can flatten all dialogue into an ordered YAML list
for translators, strip a script down to its control-flow skeleton, and merge
a translated list back into the original structure.`,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(pruneCmd())
	rootCmd.AddCommand(mergeCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(batchExtractCmd())
	rootCmd.AddCommand(batchMergeCmd())
	rootCmd.AddCommand(translateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <input.ast> <output.yaml>",
		Short: "Extract all scenario text into an ordered YAML list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], args[1])
		},
	}
}

func pruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune <input.ast> <output.ast>",
		Short: "Strip a script to its control-flow skeleton (for demo/trial builds)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(args[0], args[1])
		},
	}
}

func mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <input.ast> <lines.yaml> <output.ast>",
		Short: "Merge a translated scenario list back into a script",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args[0], args[1], args[2])
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <input.ast>",
		Short: "Verify a script survives a parse/serialize round trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func batchExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-extract <input-dir> <output-dir>",
		Short: "Extract scenario lists for every script under a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchExtract(args[0], args[1])
		},
	}
}

func batchMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-merge <script-dir> <lines-dir> <output-dir>",
		Short: "Merge translated lists back into every script under a directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchMerge(args[0], args[1], args[2])
		},
	}
}

func translateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <input.ast> <output.ast>",
		Short: "Machine-translate scenario text in place using Gemini",
		Long: `Extracts the scenario text, translates it batch by batch through the
Gemini API (protecting engine control sequences and reusing the translation
memory), then merges the result back into the script structure.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(args[0], args[1])
		},
	}
}

// loadDocument reads and parses one script file.
func loadDocument(path string) (*script.Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	doc, err := script.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// extractToYAML parses a script file and renders its scenario list.
func extractToYAML(inPath string) ([]byte, int, error) {
	doc, err := loadDocument(inPath)
	if err != nil {
		return nil, 0, err
	}
	lines, err := scenario.Extract(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("extract %s: %w", inPath, err)
	}
	data, err := scenario.EncodeList(lines)
	if err != nil {
		return nil, 0, err
	}
	return data, len(lines), nil
}

// runExtract handles the `extract` command.
func runExtract(inPath, outPath string) error {
	data, count, err := extractToYAML(inPath)
	if err != nil {
		return err
	}
	if err := writeFile(outPath, data); err != nil {
		return err
	}

	log.Info().
		Str("input", inPath).
		Str("output", outPath).
		Int("lines", count).
		Msg("Scenario text extracted")
	return nil
}

// runPrune handles the `prune` command.
func runPrune(inPath, outPath string) error {
	doc, err := loadDocument(inPath)
	if err != nil {
		return err
	}

	scenario.Prune(doc)

	if err := writeFile(outPath, []byte(script.Encode(doc))); err != nil {
		return err
	}

	log.Info().Str("input", inPath).Str("output", outPath).Msg("Script pruned")
	return nil
}

// mergeToScript parses a script and a scenario list and produces the
// merged script text.
func mergeToScript(inPath, linesPath string) ([]byte, int, error) {
	doc, err := loadDocument(inPath)
	if err != nil {
		return nil, 0, err
	}

	data, err := os.ReadFile(linesPath)
	if err != nil {
		return nil, 0, fmt.Errorf("read scenario list: %w", err)
	}
	lines, err := scenario.DecodeList(data)
	if err != nil {
		return nil, 0, err
	}

	if err := scenario.Merge(doc, lines); err != nil {
		return nil, 0, fmt.Errorf("merge %s: %w", inPath, err)
	}

	return []byte(script.Encode(doc)), len(lines), nil
}

// runMerge handles the `merge` command.
func runMerge(inPath, linesPath, outPath string) error {
	out, count, err := mergeToScript(inPath, linesPath)
	if err != nil {
		return err
	}
	if err := writeFile(outPath, out); err != nil {
		return err
	}

	log.Info().
		Str("input", inPath).
		Str("lines", linesPath).
		Str("output", outPath).
		Int("merged", count).
		Msg("Scenario text merged")
	return nil
}

// runCheck handles the `check` command.
func runCheck(inPath string) error {
	doc, err := loadDocument(inPath)
	if err != nil {
		return err
	}

	reparsed, err := script.Parse(script.Encode(doc))
	if err != nil {
		return fmt.Errorf("re-parse serialized output: %w", err)
	}
	if !script.Equal(doc, reparsed) {
		return fmt.Errorf("%s: round trip changed document structure", inPath)
	}

	lines, err := scenario.Extract(doc)
	if err != nil {
		return fmt.Errorf("extract %s: %w", inPath, err)
	}
	relines, err := scenario.Extract(reparsed)
	if err != nil {
		return fmt.Errorf("extract round-tripped document: %w", err)
	}
	if len(lines) != len(relines) {
		return fmt.Errorf("%s: round trip changed scenario line count (%d vs %d)", inPath, len(lines), len(relines))
	}
	for i := range lines {
		if lines[i] != relines[i] {
			return fmt.Errorf("%s: round trip changed scenario line %d", inPath, i)
		}
	}

	japanese := 0
	for _, line := range lines {
		if textutil.ContainsJapanese(line) {
			japanese++
		}
	}

	log.Info().
		Str("input", inPath).
		Int("lines", len(lines)).
		Int("japanese", japanese).
		Msg("Round trip OK")
	return nil
}

// runBatchExtract handles the `batch-extract` command.
func runBatchExtract(inDir, outDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	w := filewalker.NewWalker(cfg.ScriptExtension)
	entries, err := w.Walk(inDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	pool := worker.NewPool[filewalker.FileEntry, int](cfg.WorkerCount,
		func(ctx context.Context, entry filewalker.FileEntry) (int, error) {
			data, count, err := extractToYAML(entry.Path)
			if err != nil {
				return 0, err
			}
			outPath := filepath.Join(outDir, withExt(entry.RelPath, ".yaml"))
			return count, writeFile(outPath, data)
		},
	)

	results := pool.Execute(ctx, entries)

	failed := 0
	total := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		total += r.Result
	}

	log.Info().
		Int("files", len(entries)).
		Int("failed", failed).
		Int("lines", total).
		Str("output", outDir).
		Msg("Batch extraction complete")

	if failed > 0 {
		return fmt.Errorf("batch extract: %d of %d files failed", failed, len(entries))
	}
	return nil
}

// runBatchMerge handles the `batch-merge` command.
func runBatchMerge(scriptDir, linesDir, outDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	w := filewalker.NewWalker(cfg.ScriptExtension)
	entries, err := w.Walk(scriptDir)
	if err != nil {
		return fmt.Errorf("walk script directory: %w", err)
	}

	pool := worker.NewPool[filewalker.FileEntry, int](cfg.WorkerCount,
		func(ctx context.Context, entry filewalker.FileEntry) (int, error) {
			linesPath := filepath.Join(linesDir, withExt(entry.RelPath, ".yaml"))
			out, count, err := mergeToScript(entry.Path, linesPath)
			if err != nil {
				return 0, err
			}
			return count, writeFile(filepath.Join(outDir, entry.RelPath), out)
		},
	)

	results := pool.Execute(ctx, entries)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	log.Info().
		Int("files", len(entries)).
		Int("failed", failed).
		Str("output", outDir).
		Msg("Batch merge complete")

	if failed > 0 {
		return fmt.Errorf("batch merge: %d of %d files failed", failed, len(entries))
	}
	return nil
}

// runTranslate handles the `translate` command.
func runTranslate(inPath, outPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	doc, err := loadDocument(inPath)
	if err != nil {
		return err
	}
	lines, err := scenario.Extract(doc)
	if err != nil {
		return fmt.Errorf("extract %s: %w", inPath, err)
	}

	memory, err := cache.Open(cfg.TranslationMemoryPath)
	if err != nil {
		return err
	}
	terminology, err := translation.LoadTerminology(cfg.TerminologyPath)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load terminology")
		terminology = map[string]string{}
	}

	client := translation.NewClient(cfg.GeminiAPIKey, cfg.TranslationModel)
	promptBuilder := translation.NewPromptBuilder()
	systemPrompt := promptBuilder.GetSystemPrompt()

	// Collect deduplicated lines that still need a translation. Lines
	// without Japanese text are engine markup and pass through as-is.
	seen := make(map[string]struct{})
	var pending []string
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		if !textutil.ContainsJapanese(line) {
			continue
		}
		if _, cached := memory.Get(line); cached {
			continue
		}
		pending = append(pending, line)
	}

	log.Info().
		Int("total", len(lines)).
		Int("unique", len(seen)).
		Int("to_translate", len(pending)).
		Msg("Translation plan")

	semaphore := make(chan struct{}, cfg.MaxConcurrentAPICalls)
	batches := worker.Batch(pending, cfg.BatchSize)

	for batchIdx, batch := range batches {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		semaphore <- struct{}{} // Acquire.

		log.Info().
			Int("batch", batchIdx+1).
			Int("total_batches", len(batches)).
			Int("size", len(batch)).
			Msg("Translating batch")

		// Protect engine control sequences.
		protected := make([]string, len(batch))
		mappings := make([][]interpolation.Mapping, len(batch))
		for i, line := range batch {
			protected[i], mappings[i] = interpolation.Protect(line)
		}

		userPrompt := promptBuilder.BuildBatchUserPrompt(protected, translation.RelevantTerms(terminology, batch))

		response, err := client.Translate(ctx, systemPrompt, userPrompt)
		<-semaphore // Release.

		if err != nil {
			log.Error().Err(err).Int("batch", batchIdx+1).Msg("Batch translation failed")
			continue
		}

		for i, translated := range translation.SplitBatchResponse(response, len(batch)) {
			if translated == "" {
				log.Warn().Str("text", textutil.Truncate(batch[i], 30)).Msg("Missing translation in batch response")
				continue
			}
			memory.Set(batch[i], interpolation.Restore(translated, mappings[i]))
		}
	}

	// Rebuild the ordered list: translated where available, original
	// otherwise, so merge always sees a complete list.
	translatedLines := make([]string, len(lines))
	missing := 0
	for i, line := range lines {
		if translated, ok := memory.Get(line); ok {
			translatedLines[i] = translated
			continue
		}
		translatedLines[i] = line
		if textutil.ContainsJapanese(line) {
			missing++
		}
	}

	if err := scenario.Merge(doc, translatedLines); err != nil {
		return fmt.Errorf("merge translations: %w", err)
	}
	if err := writeFile(outPath, []byte(script.Encode(doc))); err != nil {
		return err
	}
	if err := memory.Flush(); err != nil {
		log.Warn().Err(err).Msg("Failed to flush translation memory")
	}

	log.Info().
		Str("input", inPath).
		Str("output", outPath).
		Int("lines", len(lines)).
		Int("untranslated", missing).
		Msg("Translation complete")
	return nil
}

// withExt swaps the extension of a relative path.
func withExt(relPath, ext string) string {
	return strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ext
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
