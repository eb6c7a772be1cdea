package recommend

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/domain/listing"
)

const (
	// historyWindow bounds how many recent searches shape the persona.
	historyWindow = 5
	// favoriteWeight outweighs any history term: a saved listing is a
	// stronger preference signal than a recency-decayed search.
	favoriteWeight = 1.5
	// summaryDescriptionLimit truncates the favorite's description in
	// its synthesized summary text.
	summaryDescriptionLimit = 100
)

// historyWeight decays with recency rank i (0 = most recent), floored
// so old searches never vanish entirely.
func historyWeight(i int) float64 {
	w := 0.5 - 0.05*float64(i)
	if w < 0.1 {
		return 0.1
	}
	return w
}

// personaInput is one weighted text to embed.
type personaInput struct {
	text   string
	weight float64
}

// BuildPersona fuses recent searches and favorites into one preference
// vector. Returns domain.ErrNoPersona when no weighted vectors can be
// built; embedding failures propagate, since a partial persona would
// silently skew every recommendation.
func (s *Service) BuildPersona(ctx context.Context, searchHistory, favoriteIDs []string) ([]float32, error) {
	inputs := historyInputs(searchHistory)

	favInputs, err := s.favoriteInputs(ctx, favoriteIDs)
	if err != nil {
		return nil, err
	}
	inputs = append(inputs, favInputs...)

	if len(inputs) == 0 {
		return nil, domain.ErrNoPersona
	}

	// Persona inputs are independent, so embed them concurrently.
	vectors := make([][]float32, len(inputs))
	weights := make([]float64, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := s.embed.Embed(gctx, in.text)
			if err != nil {
				return fmt.Errorf("embed persona input: %w", err)
			}
			vectors[i] = res.Embedding
			weights[i] = in.weight
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	persona := domain.WeightedMean(vectors, weights)
	if persona == nil {
		return nil, domain.ErrNoPersona
	}
	return persona, nil
}

// historyInputs takes the last historyWindow entries, newest first,
// skipping empty strings but keeping their recency rank for weighting.
func historyInputs(searchHistory []string) []personaInput {
	recent := searchHistory
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	inputs := make([]personaInput, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		rank := len(recent) - 1 - i
		if strings.TrimSpace(recent[i]) == "" {
			continue
		}
		inputs = append(inputs, personaInput{text: recent[i], weight: historyWeight(rank)})
	}
	return inputs
}

// favoriteInputs resolves favorites and synthesizes a summary per
// listing: title, price, and a truncated description. Malformed or
// missing IDs are skipped by the repository, never failing the batch.
func (s *Service) favoriteInputs(ctx context.Context, favoriteIDs []string) ([]personaInput, error) {
	if len(favoriteIDs) == 0 {
		return nil, nil
	}

	favorites, err := s.listings.GetMulti(ctx, favoriteIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve favorites: %w", err)
	}

	inputs := make([]personaInput, 0, len(favorites))
	for i := range favorites {
		inputs = append(inputs, personaInput{
			text:   favoriteSummary(&favorites[i]),
			weight: favoriteWeight,
		})
	}
	return inputs, nil
}

func favoriteSummary(c *listing.Candidate) string {
	summary := fmt.Sprintf("%s ราคา %s", c.Fields[listing.FieldTitle], c.Fields[listing.FieldPrice])
	if desc := c.Description(); desc != "" {
		r := []rune(desc)
		if len(r) > summaryDescriptionLimit {
			r = r[:summaryDescriptionLimit]
		}
		summary += " " + string(r)
	}
	return summary
}
