package langchain

import (
	"regexp"
	"sort"
	"strings"

	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"
)

var wordRegex = regexp.MustCompile(`\w+`)

// descriptionWeight is the score contributed by a word-level match in a
// tag or description, relative to a full tag hit.
const descriptionWeight = 0.5

// rankByRelevance orders tools by relevance to a free-text query using
// tag and description keyword overlap. It backs SearchUTCPTools when the
// client's own search capability fails.
func rankByRelevance(all []tools.Tool, query string) []tools.Tool {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return all
	}
	queryWords := map[string]struct{}{}
	for _, w := range wordRegex.FindAllString(queryLower, -1) {
		queryWords[w] = struct{}{}
	}

	type scoredTool struct {
		tool  tools.Tool
		score float64
	}
	scored := make([]scoredTool, 0, len(all))
	for _, t := range all {
		var score float64

		if strings.Contains(strings.ToLower(t.Name), queryLower) {
			score += 1.0
		}

		for _, tag := range t.Tags {
			tagLower := strings.ToLower(tag)
			if strings.Contains(queryLower, tagLower) {
				score += 1.0
			}
			for _, w := range wordRegex.FindAllString(tagLower, -1) {
				if _, ok := queryWords[w]; ok {
					score += descriptionWeight
				}
			}
		}

		if t.Description != "" {
			for _, w := range wordRegex.FindAllString(strings.ToLower(t.Description), -1) {
				if len(w) > 2 {
					if _, ok := queryWords[w]; ok {
						score += descriptionWeight
					}
				}
			}
		}

		if score > 0 {
			scored = append(scored, scoredTool{tool: t, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	out := make([]tools.Tool, 0, len(scored))
	for _, st := range scored {
		out = append(out, st.tool)
	}
	return out
}
