// Command ragtrial-report renders the daily markdown report from the latest
// offline evaluation artifact and a live stats snapshot.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/report"
	evaluc "github.com/kailas-cloud/ragtrial/internal/usecase/eval"
)

func main() {
	var (
		apiURL   = flag.String("api", "http://localhost:8000", "ragtrial API base URL")
		artifact = flag.String("artifact", "output_offline.json", "offline eval artifact path")
		outDir   = flag.String("out", "reports", "report output directory")
	)
	flag.Parse()

	if err := run(*apiURL, *artifact, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, "ragtrial-report:", err)
		os.Exit(1)
	}
}

func run(apiURL, artifactPath, outDir string) error {
	offline := loadArtifact(artifactPath)
	online := fetchStats(apiURL)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	now := time.Now()
	md := report.Build(now, offline.Summary, online, apiURL)
	path := report.Filename(outDir, now)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Println("wrote", path)
	return nil
}

// loadArtifact reads the eval artifact; a missing or broken file yields an
// empty report section rather than a failure.
func loadArtifact(path string) evaluc.Report {
	raw, err := os.ReadFile(path)
	if err != nil {
		return evaluc.Report{}
	}
	var r evaluc.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return evaluc.Report{}
	}
	return r
}

// fetchStats snapshots the live win rates; an unreachable API yields zeroes.
func fetchStats(apiURL string) domain.Stats {
	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Get(apiURL + "/stats")
	if err != nil {
		return domain.Stats{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Stats{}
	}

	var stats domain.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return domain.Stats{}
	}
	return stats
}
