// Package rerank scores a bounded window of candidates with a
// language-model judge. The judge is treated as unreliable: any
// transport or schema failure degrades to vector order without
// surfacing an error to the caller.
package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/metrics"
)

// WindowMin is the smallest rerank window regardless of limit.
const WindowMin = 10

// Service reranks candidates through a judge.
type Service struct {
	judge  Judge
	logger *zap.Logger
}

// New creates a reranking service.
func New(judge Judge, logger *zap.Logger) *Service {
	return &Service{judge: judge, logger: logger}
}

// Window returns the number of candidates submitted to the judge:
// clamp(3·limit, WindowMin, n).
func Window(limit, n int) int {
	w := 3 * limit
	if w < WindowMin {
		w = WindowMin
	}
	if w > n {
		w = n
	}
	return w
}

// ScoreSearch scores the rerank window of candidates against the
// original search query. The returned map is keyed by 1-based window
// position. A nil map means the judge failed; callers fall back to
// similarity order.
func (s *Service) ScoreSearch(ctx context.Context, query string, candidates []listing.Candidate, limit int) map[int]float64 {
	win := candidates[:Window(limit, len(candidates))]
	return s.score(ctx, searchPrompt(query, win), len(win))
}

// ScoreRecommendations scores the rerank window against a user-interest
// summary instead of a query.
func (s *Service) ScoreRecommendations(ctx context.Context, interests string, candidates []listing.Candidate, limit int) map[int]float64 {
	win := candidates[:Window(limit, len(candidates))]
	return s.score(ctx, recommendPrompt(interests, win), len(win))
}

// score runs the judge and parses its response. Transport failures and
// schema violations are logged distinctly so parsing bugs are not
// masked as network noise, but both degrade the same way: nil map,
// similarity order wins.
func (s *Service) score(ctx context.Context, prompt string, n int) map[int]float64 {
	if n == 0 {
		return nil
	}

	raw, err := s.judge.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("judge call failed, falling back to vector order", zap.Error(err))
		metrics.JudgeFallbacksTotal.WithLabelValues("transport").Inc()
		return nil
	}

	scores, err := parseScores(raw, n)
	if err != nil {
		s.logger.Error("judge returned malformed scores, falling back to vector order",
			zap.Error(err), zap.String("response", truncate(raw, 500)))
		metrics.JudgeFallbacksTotal.WithLabelValues("schema").Inc()
		return nil
	}

	return scores
}

// parseScores decodes the judge's JSON array of {id, score} objects.
// IDs are 1-based window positions; an out-of-range ID is a schema
// violation. Scores are clamped into [0, 1].
func parseScores(raw string, n int) (map[int]float64, error) {
	var items []struct {
		ID    int     `json:"id"`
		Score float64 `json:"score"`
	}

	cleaned := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("decode judge response: %w: %w", domain.ErrJudgeBadResponse, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("judge returned no scores: %w", domain.ErrJudgeBadResponse)
	}

	scores := make(map[int]float64, len(items))
	for _, item := range items {
		if item.ID < 1 || item.ID > n {
			return nil, fmt.Errorf("judge score id %d out of window [1, %d]: %w",
				item.ID, n, domain.ErrJudgeBadResponse)
		}
		score := item.Score
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores[item.ID] = score
	}
	return scores, nil
}

// stripCodeFence removes a Markdown code fence if the judge wrapped its
// JSON despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
