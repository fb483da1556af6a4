package langchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"
)

func catalog() []tools.Tool {
	return []tools.Tool{
		descriptorWithProvider("library.get_book", "Fetch a book by ISBN.", "library"),
		descriptorWithProvider("library.list_books", "List every book.", "library"),
		descriptorWithProvider("weather.forecast", "Weather forecast for a city.", "weather"),
	}
}

func TestLoadUTCPToolsKeepsClientOrder(t *testing.T) {
	client := &mockUtcpClient{tools: catalog()}
	loaded, err := LoadUTCPTools(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "library.get_book", loaded[0].Name())
	assert.Equal(t, "library.list_books", loaded[1].Name())
	assert.Equal(t, "weather.forecast", loaded[2].Name())
	assert.Equal(t, loadAllLimit, client.lastLimit)
}

func TestLoadUTCPToolsEmptyCatalog(t *testing.T) {
	client := &mockUtcpClient{}
	loaded, err := LoadUTCPTools(context.Background(), client)
	require.NoError(t, err)
	if loaded == nil || len(loaded) != 0 {
		t.Fatalf("expected an empty slice, got %v", loaded)
	}
}

func TestLoadUTCPToolsFiltersByCallTemplate(t *testing.T) {
	client := &mockUtcpClient{tools: catalog()}
	loaded, err := LoadUTCPTools(context.Background(), client, WithCallTemplate("weather"))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "weather.forecast", loaded[0].Name())

	// Exact matching only, no prefix form.
	loaded, err = LoadUTCPTools(context.Background(), client, WithCallTemplate("lib"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadUTCPToolsSkipsUnconvertibleDescriptors(t *testing.T) {
	bad := tools.Tool{} // no name
	client := &mockUtcpClient{tools: append(catalog(), bad)}
	var logged int
	loaded, err := LoadUTCPTools(context.Background(), client, WithLogger(func(string, ...any) { logged++ }))
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
	assert.Equal(t, 1, logged)
}

func TestLoadUTCPToolsListFailure(t *testing.T) {
	client := &mockUtcpClient{listErr: errors.New("client is down")}
	_, err := LoadUTCPTools(context.Background(), client)
	require.ErrorContains(t, err, "client is down")
}

func TestLoadUTCPToolsReturnsFreshWrappers(t *testing.T) {
	// Wrapper identity across loads is deliberately not guaranteed; both
	// loads must be usable but nothing may assume pointer equality.
	client := &mockUtcpClient{tools: catalog()}
	first, err := LoadUTCPTools(context.Background(), client)
	require.NoError(t, err)
	second, err := LoadUTCPTools(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].Name(), second[0].Name())
}

func TestSearchUTCPToolsDelegatesToClient(t *testing.T) {
	client := &mockUtcpClient{tools: catalog()}
	found, err := SearchUTCPTools(context.Background(), client, "book")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "library.get_book", found[0].Name())
}

func TestSearchUTCPToolsMaxResultsTruncates(t *testing.T) {
	client := &mockUtcpClient{tools: catalog()}
	found, err := SearchUTCPTools(context.Background(), client, "book", WithMaxResults(1))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "library.get_book", found[0].Name())
}

func TestSearchUTCPToolsZeroMaxResultsMeansNone(t *testing.T) {
	client := &mockUtcpClient{tools: catalog()}
	found, err := SearchUTCPTools(context.Background(), client, "book", WithMaxResults(0))
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = SearchUTCPTools(context.Background(), client, "book", WithMaxResults(-3))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchUTCPToolsCallTemplateFilter(t *testing.T) {
	client := &mockUtcpClient{tools: catalog()}
	found, err := SearchUTCPTools(context.Background(), client, "book", WithCallTemplate("library"))
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, st := range found {
		assert.Equal(t, "library", st.CallTemplate())
	}
}

func TestSearchUTCPToolsFallsBackWhenClientSearchFails(t *testing.T) {
	client := &mockUtcpClient{tools: catalog(), searchErr: errors.New("search backend offline")}
	var logged int
	found, err := SearchUTCPTools(context.Background(), client, "forecast",
		WithLogger(func(string, ...any) { logged++ }))
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "weather.forecast", found[0].Name())
	assert.Equal(t, 1, logged)
}

func TestSearchUTCPToolsFallbackAlsoFails(t *testing.T) {
	client := &mockUtcpClient{
		listErr:   errors.New("client is down"),
		searchErr: errors.New("search backend offline"),
	}
	_, err := SearchUTCPTools(context.Background(), client, "anything")
	require.ErrorContains(t, err, "search backend offline")
}

func TestRankByRelevance(t *testing.T) {
	ranked := rankByRelevance(catalog(), "weather forecast")
	require.NotEmpty(t, ranked)
	assert.Equal(t, "weather.forecast", ranked[0].Name)

	assert.Empty(t, rankByRelevance(catalog(), "zzz-no-match"))
}
