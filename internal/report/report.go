// Package report renders the daily experiment report: offline evaluation
// results next to the live feedback win rates.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/usecase/eval"
)

// Filename returns the dated report path under dir.
func Filename(dir string, date time.Time) string {
	return filepath.Join(dir, "report-"+date.Format("2006-01-02")+".md")
}

// Build renders the markdown report for one day. The online stats snapshot
// may be all-zero when the API was unreachable.
func Build(date time.Time, offline eval.Summary, online domain.Stats, apiURL string) string {
	c, w := online.Counts, online.WinRate

	lines := []string{
		fmt.Sprintf("# Daily RAG Report — %s\n", date.Format("2006-01-02")),
		"## Offline (Cosine Similarity)\n",
		fmt.Sprintf("- Samples: **%d**", offline.NumSamples),
		fmt.Sprintf("- B wins (offline): **%d**", offline.BWins),
		fmt.Sprintf("- Duration: **%vs**\n", offline.DurationSecs),
		"## Online Win-Rate\n",
		fmt.Sprintf("- Counts → A: **%d**, B: **%d**, tie: **%d**, total: **%d**",
			c.A, c.B, c.Tie, c.Total),
		fmt.Sprintf("- Win Rate → A: **%.1f%%**, B: **%.1f%%**, tie: **%.1f%%**\n",
			w.A*100, w.B*100, w.Tie*100),
		fmt.Sprintf("_API: %s_\n", apiURL),
	}
	return strings.Join(lines, "\n")
}
