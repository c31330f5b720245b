// Package eval is the offline evaluation harness: it replays a test set of
// question/gold-answer pairs through both experiment arms and scores each
// answer by embedding cosine similarity against the gold answer.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/usecase/query"
)

// Item is one test-set entry.
type Item struct {
	Question string `json:"q"`
	Gold     string `json:"a"`
}

// Detail is the per-item evaluation outcome.
type Detail struct {
	Question string        `json:"question"`
	Gold     string        `json:"gold"`
	AnswerA  string        `json:"answer_A"`
	AnswerB  string        `json:"answer_B"`
	ScoreA   float64       `json:"score_A"`
	ScoreB   float64       `json:"score_B"`
	Winner   domain.Winner `json:"winner"`
}

// Summary aggregates one evaluation run.
type Summary struct {
	NumSamples   int     `json:"num_samples"`
	BWins        int     `json:"b_wins"`
	DurationSecs float64 `json:"duration_secs"`
}

// Report is the full evaluation artifact.
type Report struct {
	Summary Summary  `json:"summary"`
	Items   []Detail `json:"items"`
}

// Service runs offline evaluations.
type Service struct {
	querier  Querier
	embedder Embedder
	topK     int
	logger   *zap.Logger
}

// New creates an eval service.
func New(querier Querier, embedder Embedder, topK int, logger *zap.Logger) *Service {
	return &Service{querier: querier, embedder: embedder, topK: topK, logger: logger}
}

// Run evaluates every item under both arms. Winners are decided by strict
// comparison of the unrounded scores; equality is a tie. Scores in the
// report are rounded to four decimals.
func (s *Service) Run(ctx context.Context, items []Item) (Report, error) {
	start := time.Now()
	details := make([]Detail, 0, len(items))
	bWins := 0

	for _, item := range items {
		goldRes, err := s.embedder.Embed(ctx, item.Gold)
		if err != nil {
			return Report{}, fmt.Errorf("embed gold answer: %w", err)
		}

		answerA, scoreA, err := s.scoreArm(ctx, item.Question, domain.VariantA, goldRes.Embedding)
		if err != nil {
			return Report{}, err
		}
		answerB, scoreB, err := s.scoreArm(ctx, item.Question, domain.VariantB, goldRes.Embedding)
		if err != nil {
			return Report{}, err
		}

		winner := domain.WinnerTie
		switch {
		case scoreA > scoreB:
			winner = domain.WinnerA
		case scoreB > scoreA:
			winner = domain.WinnerB
		}
		if winner == domain.WinnerB {
			bWins++
		}

		details = append(details, Detail{
			Question: item.Question,
			Gold:     item.Gold,
			AnswerA:  answerA,
			AnswerB:  answerB,
			ScoreA:   round4(scoreA),
			ScoreB:   round4(scoreB),
			Winner:   winner,
		})
	}

	report := Report{
		Summary: Summary{
			NumSamples:   len(items),
			BWins:        bWins,
			DurationSecs: round2(time.Since(start).Seconds()),
		},
		Items: details,
	}

	s.logger.Info("Offline evaluation finished",
		zap.Int("num_samples", report.Summary.NumSamples),
		zap.Int("b_wins", report.Summary.BWins),
		zap.Float64("duration_secs", report.Summary.DurationSecs),
	)
	return report, nil
}

// scoreArm serves the question under one arm and scores the answer against
// the gold embedding.
func (s *Service) scoreArm(
	ctx context.Context, question string, variant domain.Variant, gold []float32,
) (string, float64, error) {
	resp, err := s.querier.Ask(ctx, query.Request{
		Question: question,
		TopK:     s.topK,
		Variant:  variant,
	})
	if err != nil {
		return "", 0, fmt.Errorf("query arm %s: %w", variant, err)
	}

	ansRes, err := s.embedder.Embed(ctx, resp.Answer)
	if err != nil {
		return "", 0, fmt.Errorf("embed arm %s answer: %w", variant, err)
	}

	return resp.Answer, domain.CosineSimilarity(gold, ansRes.Embedding), nil
}

// LoadTestSet reads a JSON array of test items from disk.
func LoadTestSet(path string) ([]Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test set: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse test set: %w", err)
	}
	return items, nil
}

// WriteArtifact writes the report as indented JSON.
func WriteArtifact(path string, report Report) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }

func round2(x float64) float64 { return math.Round(x*100) / 100 }
