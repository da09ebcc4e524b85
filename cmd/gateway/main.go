package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/sourcegraph/conc/pool"

	"github.com/saferoom-id/judolguard/pkg/cache"
	"github.com/saferoom-id/judolguard/pkg/config"
	"github.com/saferoom-id/judolguard/pkg/detector"
	"github.com/saferoom-id/judolguard/pkg/history"
	"github.com/saferoom-id/judolguard/pkg/telemetry"
)

// Scanner bundles the detector with its optional gateway-side services.
// Cache and history degrade gracefully when unconfigured.
type Scanner struct {
	det     *detector.Detector
	opts    *detector.Options
	cache   *cache.Cache
	history history.Store
	stats   *telemetry.Client
	cfg     *config.Config
}

func NewScanner(ctx context.Context, cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	cfg.MustValidate()

	opts := cfg.DetectorOptions()
	if cfg.PatternsPath != "" {
		ps := detector.LoadPatterns(cfg.PatternsPath)
		loaded := ps.Options()
		loaded.SensitivityLevel = opts.SensitivityLevel
		loaded.Language = opts.Language
		loaded.IncludeAnalysis = opts.IncludeAnalysis
		loaded.CheckRepetition = opts.CheckRepetition
		loaded.CheckURLs = opts.CheckURLs
		loaded.CheckEvasion = opts.CheckEvasion
		loaded.CheckContextual = opts.CheckContextual
		loaded.CheckContactInfo = opts.CheckContactInfo
		opts = loaded
		log.Printf("[STARTUP] loaded pattern set from %s", cfg.PatternsPath)
	}

	s := &Scanner{
		det:   detector.New(opts),
		opts:  opts,
		stats: telemetry.GlobalClient,
		cfg:   cfg,
	}

	c, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	if err != nil {
		log.Printf("[WARN] result cache disabled: %v", err)
	} else if c != nil {
		s.cache = c
		log.Printf("[STARTUP] result cache enabled (redis %s, ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	h, err := history.Open(ctx, cfg.PostgresDSN, cfg.HistoryMemory)
	if err != nil {
		log.Printf("[WARN] postgres history unavailable, using in-memory ring: %v", err)
		h, _ = history.Open(ctx, "", cfg.HistoryMemory)
	} else if cfg.PostgresDSN != "" {
		log.Printf("[STARTUP] scan history persisted to postgres")
	}
	s.history = h

	return s
}

// Scan classifies one text through the cache and records the outcome.
func (s *Scanner) Scan(ctx context.Context, text string) *detector.Result {
	key := cache.Key(text, s.opts)
	if cached := s.cache.Get(ctx, key); cached != nil {
		s.stats.TrackCache(true)
		return cached
	}
	s.stats.TrackCache(false)

	res := s.det.Detect(text, nil)
	s.stats.TrackScan(res.IsGambling)

	if err := s.cache.Set(ctx, key, res); err != nil {
		log.Printf("[WARN] cache write failed: %v", err)
	}
	if _, err := s.history.Record(ctx, text, res); err != nil {
		log.Printf("[WARN] history write failed: %v", err)
		s.stats.TrackError()
	}
	return res
}

// ScanBatch classifies texts concurrently, preserving input order.
func (s *Scanner) ScanBatch(ctx context.Context, texts []string) []*detector.Result {
	out := make([]*detector.Result, len(texts))
	p := pool.New().WithMaxGoroutines(s.cfg.BatchWorkers)
	for i, t := range texts {
		p.Go(func() {
			out[i] = s.Scan(ctx, t)
		})
	}
	p.Wait()
	return out
}

func (s *Scanner) Close() {
	if err := s.cache.Close(); err != nil {
		log.Printf("[WARN] cache close: %v", err)
	}
	if s.history != nil {
		s.history.Close()
	}
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("[STARTUP] loaded environment from .env")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		addr := ""
		if len(os.Args) > 2 {
			addr = os.Args[2]
		}
		runHTTPServer(addr)
	case "scan":
		if len(os.Args) < 3 {
			log.Fatal("scan requires a text argument")
		}
		runScanOnce(strings.Join(os.Args[2:], " "))
	case "stdin":
		runStdinScanner()
	case "version":
		fmt.Printf("judolguard v%s\n", detector.Version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("JudolGuard v%s - gambling promotion detector\n\n", detector.Version)
	fmt.Println("Usage:")
	fmt.Println("  judolguard serve [addr]    Start HTTP gateway (default: :8080)")
	fmt.Println("  judolguard scan <text>     Classify one text and print JSON")
	fmt.Println("  judolguard stdin           Classify each line read from stdin")
	fmt.Println("  judolguard version         Show version")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  JUDOLGUARD_SENSITIVITY    Sensitivity level 1-5 (default: 3)")
	fmt.Println("  JUDOLGUARD_LANGUAGE       Language pattern set (default: all)")
	fmt.Println("  JUDOLGUARD_PATTERNS_PATH  Keyword/blocklist file (JSON, YAML, or plain)")
	fmt.Println("  JUDOLGUARD_REDIS_ADDR     Enable result caching")
	fmt.Println("  JUDOLGUARD_POSTGRES_DSN   Persist scan history")
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(addr string) {
	ctx := context.Background()
	cfg := config.NewDefaultConfig()
	if addr != "" {
		cfg.ListenAddr = addr
	}
	scanner := NewScanner(ctx, cfg)
	defer scanner.Close()

	app := fiber.New(fiber.Config{
		AppName: "JudolGuard",
	})

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": detector.Version})
	})

	app.Get("/stats", func(c fiber.Ctx) error {
		return c.JSON(scanner.stats.Snapshot())
	})

	app.Post("/v1/detect", func(c fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Text == "" {
			return c.Status(400).JSON(fiber.Map{"error": "text field is required"})
		}
		if len(req.Text) > cfg.MaxTextLength {
			return c.Status(413).JSON(fiber.Map{"error": "text too long"})
		}
		return c.JSON(scanner.Scan(c.Context(), req.Text))
	})

	app.Post("/v1/detect/batch", func(c fiber.Ctx) error {
		var req struct {
			Texts []string `json:"texts"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if len(req.Texts) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "texts field is required"})
		}
		if len(req.Texts) > cfg.MaxBatchSize {
			return c.Status(413).JSON(fiber.Map{"error": fmt.Sprintf("batch exceeds %d texts", cfg.MaxBatchSize)})
		}
		for _, t := range req.Texts {
			if len(t) > cfg.MaxTextLength {
				return c.Status(413).JSON(fiber.Map{"error": "text too long"})
			}
		}
		start := time.Now()
		results := scanner.ScanBatch(c.Context(), req.Texts)
		return c.JSON(fiber.Map{
			"results":    results,
			"count":      len(results),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	})

	app.Get("/v1/history", func(c fiber.Ctx) error {
		limit := fiber.Query(c, "limit", 50)
		entries, err := scanner.history.Recent(c.Context(), limit)
		if err != nil {
			scanner.stats.TrackError()
			return c.Status(500).JSON(fiber.Map{"error": "history unavailable"})
		}
		return c.JSON(fiber.Map{"entries": entries})
	})

	log.Printf("[STARTUP] JudolGuard gateway listening on %s", cfg.ListenAddr)
	log.Printf("[STARTUP] Endpoints:")
	log.Printf("  GET  /healthz          - Health check")
	log.Printf("  GET  /stats            - Counter snapshot")
	log.Printf("  POST /v1/detect        - Classify one text")
	log.Printf("  POST /v1/detect/batch  - Classify up to %d texts", cfg.MaxBatchSize)
	log.Printf("  GET  /v1/history       - Recent scan history")

	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

// ============================================================================
// CLI Modes
// ============================================================================

func runScanOnce(text string) {
	ctx := context.Background()
	scanner := NewScanner(ctx, config.NewDefaultConfig())
	defer scanner.Close()

	res := scanner.Scan(ctx, text)
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
	if res.IsGambling {
		os.Exit(1)
	}
}

// runStdinScanner classifies each input line and emits one JSON object per
// line, suitable for piping comment dumps through.
func runStdinScanner() {
	ctx := context.Background()
	scanner := NewScanner(ctx, config.NewDefaultConfig())
	defer scanner.Close()

	enc := json.NewEncoder(os.Stdout)
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if err := enc.Encode(scanner.Scan(ctx, line)); err != nil {
			log.Fatalf("encode result: %v", err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}
