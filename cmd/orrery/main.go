package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/orrery-org/orrery/dataset"
	"github.com/orrery-org/orrery/web"
)

// ============================================================================
// ORRERY — exoplanet discovery dashboard
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	addr := flag.String("addr", "127.0.0.1:8000", "Listen address for the dashboard")
	dataPath := flag.String("data", "", "Path to a CSV dataset (default: bundled planets data)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Orrery — exoplanet discovery dashboard

Usage:
  orrery
  orrery --addr 0.0.0.0:9000
  orrery --data mydata.csv

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("orrery %s\n", version)
		os.Exit(0)
	}

	// ── Dataset ───────────────────────────────────────────────────────────
	provider := dataset.NewProvider(*dataPath)
	if err := provider.Load(); err != nil {
		fatalf("Failed to load dataset: %v", err)
	}

	// ── Serve ─────────────────────────────────────────────────────────────
	server := web.NewServer(provider)
	log.Printf("🌌 Orrery %s listening on http://%s", version, *addr)
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		fatalf("Server failed: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
