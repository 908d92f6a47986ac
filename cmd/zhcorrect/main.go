// Command zhcorrect is the entry point for the Mandarin ASR text-correction
// pipeline. It wires the hotword, rule, post-processing, rectification, and
// streaming-merge stages into one [engine.Orchestrator], then stands in for
// the HTTP/WebSocket host that a real deployment would put in front of it:
// it reads plain-text lines from stdin (or a single -text argument), runs
// each through the Orchestrator, and prints the corrected result.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrWong99/zhcorrect/internal/config"
	"github.com/MrWong99/zhcorrect/internal/engine"
	"github.com/MrWong99/zhcorrect/internal/hotword"
	"github.com/MrWong99/zhcorrect/internal/merger"
	"github.com/MrWong99/zhcorrect/internal/observe"
	"github.com/MrWong99/zhcorrect/internal/postproc"
	"github.com/MrWong99/zhcorrect/internal/rectify"
	"github.com/MrWong99/zhcorrect/internal/rectify/pgstore"
	"github.com/MrWong99/zhcorrect/internal/rule"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	text := flag.String("text", "", "correct a single line of text and exit, instead of reading stdin")
	streamID := flag.String("stream-id", "cli", "stream_id used when -text is reconciled as a stream's final text")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "zhcorrect: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "zhcorrect: %v\n", err)
		}
		return 1
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(slogLevel(cfg.Server.LogLevel))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar})))

	slog.Info("zhcorrect starting", "config", *configPath, "log_level", cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observe.Metrics
	var metricsServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		shutdownOTel, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "zhcorrect"})
		if err != nil {
			slog.Error("failed to initialise metrics provider", "err", err)
			return 1
		}
		defer shutdownOTel(context.Background())

		metrics = observe.DefaultMetrics()
		metricsServer = &http.Server{Addr: cfg.Server.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server stopped", "err", err)
			}
		}()
		slog.Info("metrics endpoint listening", "addr", cfg.Server.MetricsAddr)
	}

	stores, err := buildStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to build orchestrator", "err", err)
		return 1
	}
	orch := engine.New(stores.hotword, stores.rule, stores.postproc, stores.rectify, metrics, mergerOptions(cfg), cfg.Rectify.Threshold)

	watcher, err := config.NewWatcher(*configPath, stores.reloadOnChange(levelVar), config.WithInterval(5*time.Second))
	if err != nil {
		slog.Warn("config watcher disabled", "err", err)
	} else {
		defer watcher.Stop()
	}

	printStartupSummary(cfg)

	if *text != "" {
		fmt.Println(orch.CorrectStreamingFinal(ctx, *text, *streamID))
		return 0
	}

	slog.Info("ready — reading lines from stdin (Ctrl+D to stop, Ctrl+C to abort)")
	if err := runREPL(ctx, orch); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("repl error", "err", err)
		return 1
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	slog.Info("goodbye")
	return 0
}

// runREPL reads one line of text per call to [engine.Orchestrator.ApplyCorrections]
// and echoes the corrected result, stopping at EOF or ctx cancellation.
func runREPL(ctx context.Context, orch *engine.Orchestrator) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Println(orch.ApplyCorrections(line))
	}
}

// stores holds the mutable correction stages a [config.Watcher] reload can
// refresh in place, plus the read-only post-processor stage built once at
// startup (its options aren't in [config.ConfigDiff]'s hot-reloadable set).
type stores struct {
	hotword  *hotword.Corrector
	hwStore  *hotword.Store
	rule     *rule.Corrector
	postproc *postproc.Processor
	rectify  *rectify.Store
}

// buildStores loads every store cfg names, ready to be wired into an
// [engine.Orchestrator].
func buildStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	hwStore := hotword.NewStore(cfg.Hotword.Threshold, cfg.Hotword.SimilarityDelta)
	if cfg.Hotword.DictPath != "" {
		if n, err := hwStore.LoadFile(cfg.Hotword.DictPath); err != nil {
			return nil, fmt.Errorf("load hotword dict: %w", err)
		} else {
			slog.Info("hotword dictionary loaded", "count", n)
		}
	}
	hw := hotword.New(hwStore, cfg.Hotword.TopK)

	rl := rule.New()
	if cfg.Rule.RulesPath != "" {
		if n, err := rl.LoadFile(cfg.Rule.RulesPath); err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		} else {
			slog.Info("rule set loaded", "count", n)
		}
	}

	var zhConverter *postproc.ZhConverter
	if cfg.PostProc.ZhVariantDictPath != "" {
		zhConverter = postproc.LoadZhConverter(cfg.PostProc.ZhVariantDictPath)
	}
	pp := postproc.NewProcessor(postProcOptions(cfg), zhConverter)

	rectifyStore := rectify.NewStore(0, 0)
	knowledge, err := loadKnowledgeBase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load rectification knowledge base: %w", err)
	}
	if knowledge != "" {
		n := rectifyStore.LoadText(knowledge)
		slog.Info("rectification knowledge base loaded", "count", n)
	}

	return &stores{
		hotword: hw, hwStore: hwStore, rule: rl, postproc: pp, rectify: rectifyStore,
	}, nil
}

// reloadOnChange returns a [config.Watcher] callback that reloads exactly
// the stores a [config.ConfigDiff] marks as changed, and adjusts the live
// log level in place. Postgres-backed rectification records and
// post-processor options are not hot-reloadable (dropping/regaining a
// pgx pool or rebuilding the zh-variant dictionary mid-stream isn't worth
// the complexity for a CLI host); restart the process to pick those up.
func (s *stores) reloadOnChange(levelVar *slog.LevelVar) func(old, new *config.Config, diff config.ConfigDiff) {
	return func(old, new *config.Config, diff config.ConfigDiff) {
		if diff.LogLevelChanged {
			levelVar.Set(slogLevel(diff.NewLogLevel))
			slog.Info("log level changed", "level", diff.NewLogLevel)
		}
		if diff.HotwordChanged && new.Hotword.DictPath != "" {
			if n, err := s.hwStore.LoadFile(new.Hotword.DictPath); err != nil {
				slog.Error("hotword reload failed, keeping previous dictionary", "err", err)
			} else {
				slog.Info("hotword dictionary hot-reloaded", "count", n)
			}
		}
		if diff.RuleChanged && new.Rule.RulesPath != "" {
			if n, err := s.rule.LoadFile(new.Rule.RulesPath); err != nil {
				slog.Error("rule reload failed, keeping previous rule set", "err", err)
			} else {
				slog.Info("rule set hot-reloaded", "count", n)
			}
		}
		if diff.RectifyChanged && new.Rectify.KnowledgePath != "" {
			if n, err := s.rectify.LoadFile(new.Rectify.KnowledgePath); err != nil {
				slog.Error("rectify knowledge base reload failed, keeping previous records", "err", err)
			} else {
				slog.Info("rectify knowledge base hot-reloaded", "count", n)
			}
		}
	}
}

// loadKnowledgeBase reads cfg.Rectify.KnowledgePath (if set) and, when
// cfg.Rectify.PostgresDSN is also configured, appends every record held in
// the Postgres-backed candidate table so the in-memory phoneme search sees
// both sources. Returns "" if neither source is configured.
func loadKnowledgeBase(ctx context.Context, cfg *config.Config) (string, error) {
	var blocks []string

	if cfg.Rectify.KnowledgePath != "" {
		data, err := os.ReadFile(cfg.Rectify.KnowledgePath)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("rectify.knowledge_path does not exist, skipping", "path", cfg.Rectify.KnowledgePath)
			} else {
				return "", err
			}
		} else {
			blocks = append(blocks, string(data))
		}
	}

	if cfg.Rectify.PostgresDSN != "" {
		dims := cfg.Rectify.EmbeddingDimensions
		if dims <= 0 {
			dims = 1536
		}
		pool, err := pgxpool.New(ctx, cfg.Rectify.PostgresDSN)
		if err != nil {
			return "", fmt.Errorf("connect to rectify postgres: %w", err)
		}
		defer pool.Close()

		store := pgstore.NewStore(pool, dims)
		if err := store.Migrate(ctx); err != nil {
			return "", fmt.Errorf("migrate rectify postgres schema: %w", err)
		}
		candidates, err := store.All(ctx)
		if err != nil {
			return "", fmt.Errorf("load rectify postgres records: %w", err)
		}
		for _, c := range candidates {
			blocks = append(blocks, c.Wrong+"\n"+c.Right)
		}
		slog.Info("rectification records loaded from postgres", "count", len(candidates))
	}

	return strings.Join(blocks, "\n---\n"), nil
}

func postProcOptions(cfg *config.Config) postproc.Options {
	return postproc.Options{
		FillerRemoveEnable: cfg.PostProc.RemoveFillers,
		FillerAggressive:   false,

		NormalizeFullwidthLetters: cfg.PostProc.NormalizeFullwidth,
		NormalizeFullwidthDigits:  cfg.PostProc.NormalizeFullwidth,
		NormalizeFullwidthSpace:   cfg.PostProc.NormalizeFullwidth,

		ITNEnable:      cfg.ITN.Enabled,
		ITNErhuaRemove: cfg.PostProc.RemoveErhua,
		ITNStrict:      cfg.ITN.Strict,

		SpacingEnable: cfg.PostProc.SpaceCJKASCII,

		ZhConvertEnable: cfg.PostProc.ZhVariantDictPath != "",
		ZhConvertLocale: postproc.LocaleZHCN,

		PuncConvertEnable: true,
		PuncPreferChinese: true,
	}
}

func mergerOptions(cfg *config.Config) merger.Options {
	opts := cfg.Merger
	if opts.OverlapChars <= 0 {
		return merger.DefaultOptions()
	}
	return merger.Options{
		OverlapChars:      opts.OverlapChars,
		MaxOverlapCheck:   opts.MaxOverlapCheck,
		ErrorTolerance:    opts.ErrorTolerance,
		MaxSkipNew:        opts.MaxSkipNew,
		FinalReplaceRatio: opts.FinalReplaceRatio,
	}
}

func printStartupSummary(cfg *config.Config) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         zhcorrect — startup summary    ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printField("Hotword dict", cfg.Hotword.DictPath)
	printField("Rule set", cfg.Rule.RulesPath)
	printField("Rectify KB", cfg.Rectify.KnowledgePath)
	printField("Metrics addr", cfg.Server.MetricsAddr)
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printField(label, value string) {
	if value == "" {
		value = "(not configured)"
	}
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-12s    : %-19s ║\n", label, value)
}

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
