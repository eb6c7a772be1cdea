package rerank

import (
	"fmt"
	"strings"

	"github.com/bom70489/YDP/internal/domain/listing"
)

// descriptionLimit truncates candidate descriptions in the prompt.
const descriptionLimit = 1000

// searchPrompt builds the deterministic judge prompt for a search
// query: fixed preamble, the query, then candidates numbered from 1 in
// input order.
func searchPrompt(query string, candidates []listing.Candidate) string {
	var b strings.Builder
	b.WriteString("You are an expert search relevancy judge. Respond with JSON array only.\n")
	fmt.Fprintf(&b, "User query: %q\nCandidates:\n", query)
	for i := range candidates {
		c := &candidates[i]
		fmt.Fprintf(&b, "%d. %s – %s\n", i+1, c.Title(), truncate(c.Description(), descriptionLimit))
	}
	b.WriteString(`Score each document between 0.0 and 1.0 and output JSON array like: [{"id":1,"score":0.92}, ...]`)
	return b.String()
}

// recommendPrompt builds the judge prompt for personalization: the
// user-interest summary stands in for a query and each candidate
// carries price and location context.
func recommendPrompt(interests string, candidates []listing.Candidate) string {
	var b strings.Builder
	b.WriteString("You are an expert at personalizing property recommendations. Respond with JSON array only.\n")
	fmt.Fprintf(&b, "User interests: %q\nCandidates:\n", interests)
	for i := range candidates {
		c := &candidates[i]
		location := c.Fields[listing.FieldLocation]
		if location == "" {
			location = "N/A"
		}
		price := c.Fields[listing.FieldPrice]
		if price == "" {
			price = "N/A"
		}
		fmt.Fprintf(&b, "%d. %s - ฿%s - %s\n%s\n",
			i+1, c.Title(), price, location, truncate(c.Description(), 200))
	}
	b.WriteString("\nScore each property between 0.0 and 1.0 based on relevance to user interests.\n")
	b.WriteString(`Output JSON array: [{"id":1,"score":0.92}, ...]`)
	return b.String()
}
