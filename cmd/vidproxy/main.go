// cmd/vidproxy/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidproxy/vidproxy/internal/config"
	"github.com/vidproxy/vidproxy/internal/monitoring"
	"github.com/vidproxy/vidproxy/internal/server"
	"github.com/vidproxy/vidproxy/internal/service"
	"github.com/vidproxy/vidproxy/internal/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "serve":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: vidproxy serve <config.yaml>\n")
			os.Exit(1)
		}
		runServer(os.Args[2])

	case "validate":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: vidproxy validate <config.yaml>\n")
			os.Exit(1)
		}
		validateConfig(os.Args[2])

	case "version", "--version":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runServer loads configuration and serves until interrupted.
func runServer(configFile string) {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := utils.ParseLogLevel(cfg.Logging.Level)
	if hasFlag("-v") || hasFlag("--verbose") {
		level = utils.DebugLevel
	}
	logger := utils.NewLoggerWithLevel(level)

	metrics := monitoring.NewMetrics(nil)
	svc := service.New(cfg, nil, logger, metrics)
	srv := server.New(cfg, svc, logger, metrics)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		os.Exit(1)
	case sig := <-stop:
		logger.Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shutdown failed: %v\n", err)
			os.Exit(1)
		}
	}
}

// validateConfig checks a configuration file and reports the result.
func validateConfig(configFile string) {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if hasFlag("-v") || hasFlag("--verbose") {
		fmt.Printf("Configuration details:\n")
		fmt.Printf("  Listen address: %s\n", cfg.Server.Address)
		fmt.Printf("  Source: %s\n", cfg.Source.BaseURL)
		fmt.Printf("  CDN host: %s\n", cfg.CDN.Host)
		fmt.Printf("  Timeouts: search=%s details=%s\n", cfg.Source.SearchTimeout, cfg.Source.DetailsTimeout)
	}

	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
}

// hasFlag checks if a flag is present in command line arguments.
func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

// printUsage displays help information.
func printUsage() {
	fmt.Println("vidproxy - scraping proxy for video search and details")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vidproxy serve <config.yaml>      Run the JSON API server")
	fmt.Println("  vidproxy validate <config.yaml>   Validate configuration file")
	fmt.Println("  vidproxy version                  Show version information")
	fmt.Println("  vidproxy help                     Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose                     Enable verbose output")
}

// printVersion displays version information.
func printVersion() {
	fmt.Printf("vidproxy %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
