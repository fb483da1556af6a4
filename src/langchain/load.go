package langchain

import (
	"context"
	"fmt"

	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"
)

// loadAllLimit is the search limit used to enumerate a client's full
// catalog through its search surface with an empty query.
const loadAllLimit = 1000

type options struct {
	callTemplate string
	maxResults   *int
	logger       Logger
}

// Option configures a load, search or convert call.
type Option func(*options)

// WithCallTemplate restricts results to tools owned by the named call
// template. Matching is exact; there is no wildcard or prefix form.
func WithCallTemplate(name string) Option {
	return func(o *options) { o.callTemplate = name }
}

// WithMaxResults caps the number of search results. Zero or a negative
// value yields no results; omitting the option means unlimited.
func WithMaxResults(n int) Option {
	return func(o *options) { o.maxResults = &n }
}

// WithLogger sets the logging callback used for per-tool conversion
// failures and call diagnostics. The default logger discards everything.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: discardLogger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadUTCPTools enumerates every tool known to the client and converts
// each into a StructuredTool. Order follows the client's own enumeration
// order, a client with no registered tools yields an empty slice, and a
// descriptor that fails to convert is logged and skipped without
// aborting the rest of the catalog.
func LoadUTCPTools(ctx context.Context, client UtcpClientInterface, opts ...Option) ([]*StructuredTool, error) {
	o := newOptions(opts)
	all, err := client.SearchTools(ctx, "", loadAllLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list UTCP tools: %w", err)
	}
	return wrapAll(client, filterByCallTemplate(all, o.callTemplate), o), nil
}

// SearchUTCPTools asks the client's search capability for tools relevant
// to the query and converts the results. Ranking is delegated entirely to
// the client; if the client's search fails, the full catalog is fetched
// and ranked locally as a fallback. Results are truncated to the
// WithMaxResults cap after filtering, keeping the client's order.
func SearchUTCPTools(ctx context.Context, client UtcpClientInterface, query string, opts ...Option) ([]*StructuredTool, error) {
	o := newOptions(opts)
	if o.maxResults != nil && *o.maxResults <= 0 {
		return []*StructuredTool{}, nil
	}

	limit := loadAllLimit
	if o.maxResults != nil {
		limit = *o.maxResults
	}

	found, err := client.SearchTools(ctx, query, limit)
	if err != nil {
		o.logger("utcp search failed (%v), falling back to local relevance scan", err)
		all, listErr := client.SearchTools(ctx, "", loadAllLimit)
		if listErr != nil {
			return nil, fmt.Errorf("failed to search UTCP tools: %w", err)
		}
		found = rankByRelevance(all, query)
	}

	found = filterByCallTemplate(found, o.callTemplate)
	if o.maxResults != nil && len(found) > *o.maxResults {
		found = found[:*o.maxResults]
	}
	return wrapAll(client, found, o), nil
}

// filterByCallTemplate keeps tools whose owning call template matches the
// given name exactly. An empty name keeps everything.
func filterByCallTemplate(list []tools.Tool, callTemplate string) []tools.Tool {
	if callTemplate == "" {
		return list
	}
	out := make([]tools.Tool, 0, len(list))
	for _, t := range list {
		if name, _ := callTemplateIdentity(t.Provider); name == callTemplate {
			out = append(out, t)
		}
	}
	return out
}

// wrapAll converts each descriptor, skipping and logging the ones that
// fail so one bad descriptor never hides the rest.
func wrapAll(client UtcpClientInterface, list []tools.Tool, o *options) []*StructuredTool {
	wrapped := make([]*StructuredTool, 0, len(list))
	for _, t := range list {
		st, err := ConvertTool(client, t, WithLogger(o.logger))
		if err != nil {
			o.logger("failed to convert tool %s: %v", t.Name, err)
			continue
		}
		wrapped = append(wrapped, st)
	}
	return wrapped
}
