package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ironsheep/drawing-tools-mcp/internal/analysis"
	"github.com/ironsheep/drawing-tools-mcp/internal/config"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/httpapi"
	logpkg "github.com/ironsheep/drawing-tools-mcp/internal/logger"
	"github.com/ironsheep/drawing-tools-mcp/internal/metrics"
	"github.com/ironsheep/drawing-tools-mcp/internal/ocr"
	"github.com/ironsheep/drawing-tools-mcp/internal/render"
	"github.com/ironsheep/drawing-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := "serve"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "drawing-tools-mcp %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		if ocr.Available() {
			fmt.Fprintf(stdout, "  Tesseract:  %s\n", ocr.Version())
		}
		return 0
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "interpret":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "usage: drawing-tools-mcp interpret <drawing.json>")
			return 2
		}
		if err := interpret(args[1], stdout); err != nil {
			fmt.Fprintf(stderr, "interpret: %v\n", err)
			return 1
		}
		return 0
	case "serve":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		printUsage(stderr)
		return 2
	}

	if err := serve(); err != nil {
		fmt.Fprintf(stderr, "drawing-tools-mcp: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "drawing-tools-mcp - MCP server for drawing and document interpretation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: drawing-tools-mcp [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve                 Run the server (default)")
	fmt.Fprintln(w, "  interpret <file>      Print the interpretation of a JSON drawing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  ENV=local|dev|prod                 Selects config/<env>.yaml")
	fmt.Fprintf(w, "  %s=<path>         Config file override\n", config.PathEnvVar)
	fmt.Fprintf(w, "  %s=debug       Log level override\n", config.LogLevelEnvVar)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "In mcp mode the server speaks MCP over stdin/stdout.")
	fmt.Fprintln(w, "Configure it in your MCP client (e.g., Claude Desktop).")
}

// interpret analyzes one drawing file and writes the prose interpretation to w.
func interpret(path string, w io.Writer) error {
	svc := analysis.NewService()
	d, err := svc.LoadDrawing(path)
	if err != nil {
		return err
	}
	report, err := svc.Analyze(context.Background(), d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, report.Interpretation)
	return err
}

func serve() error {
	// .env is optional
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs always go to stderr; stdout carries the MCP protocol
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting drawing-tools-mcp",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.String("env", env),
		zap.String("mode", cfg.Mode),
		zap.Bool("ocr_available", ocr.Available()),
	)

	metrics.Register()

	svc := analysis.NewService(analysis.WithCache(drawing.NewCache(cfg.Cache.MaxEntries)))
	renderDefaults := render.Options{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Margin: cfg.Render.Margin,
	}

	if cfg.Mode == config.ModeHTTP {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serveHTTP(ctx, cfg, httpapi.NewServer(svc, renderDefaults, logger), logger)
	}

	// The MCP client ends the session by closing stdin

	server.Version = Version
	srv := server.New(svc, logger, server.Defaults{
		Render: renderDefaults,
		OCR:    ocr.Options{Language: cfg.OCR.Language},
	})
	if err := srv.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, cfg config.Config, api *httpapi.Server, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
