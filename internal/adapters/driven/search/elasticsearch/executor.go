// Package elasticsearch implements driven.QueryExecutor against an
// Elasticsearch cluster holding one index per table.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/olivere/elastic/v7"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/logger"
)

const (
	defaultMaxResults = 1000

	// idHitField is filled from the hit's _id when the source has no Id.
	idHitField = domain.DefaultIDField
)

// Ensure Executor implements the interface.
var _ driven.QueryExecutor = (*Executor)(nil)

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

type searchHit struct {
	ID     string         `json:"_id"`
	Source map[string]any `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// Executor runs filter expressions as Elasticsearch searches.
type Executor struct {
	client     *elasticsearch.Client
	maxResults int
}

// Option configures an Executor.
type Option func(*Executor)

// WithClient uses an existing client instead of dialling addresses.
func WithClient(cli *elasticsearch.Client) Option {
	return func(e *Executor) {
		e.client = cli
	}
}

// WithMaxResults caps the hits returned per table.
func WithMaxResults(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// NewExecutor creates an executor for the cluster at addresses.
func NewExecutor(addresses []string, opts ...Option) (*Executor, error) {
	e := &Executor{maxResults: defaultMaxResults}
	for _, opt := range opts {
		opt(e)
	}
	if e.client != nil {
		return e, nil
	}

	if len(addresses) == 0 {
		return nil, fmt.Errorf("%w: no elasticsearch addresses", domain.ErrNotConfigured)
	}
	cli, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	e.client = cli
	return e, nil
}

// IndexName maps a table to its index. Index names must be lower case.
func IndexName(table string) string {
	return strings.ToLower(table)
}

// BuildQuery renders filter as a search body: a bool query whose should
// clauses are case-insensitive wildcard matches, one per field.
func BuildQuery(filter domain.FilterExpression) (io.Reader, error) {
	if filter.Table == "" || len(filter.Fields) == 0 {
		return nil, fmt.Errorf("%w: filter needs a table and at least one field", domain.ErrInvalidInput)
	}

	pattern := "*" + wildcardEscaper.Replace(filter.Term) + "*"
	boolQuery := elastic.NewBoolQuery().MinimumNumberShouldMatch(1)
	for _, field := range filter.Fields {
		boolQuery.Should(elastic.NewWildcardQuery(field, pattern).CaseInsensitive(true))
	}

	body, err := elastic.NewSearchRequest().Query(boolQuery).Body()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return strings.NewReader(body), nil
}

// Execute searches the table's index.
func (e *Executor) Execute(ctx context.Context, filter domain.FilterExpression) ([]domain.Record, error) {
	query, err := BuildQuery(filter)
	if err != nil {
		return nil, err
	}
	index := IndexName(filter.Table)
	logger.Debug("Elasticsearch: index %s, fields %v", index, filter.Fields)

	search := e.client.Search
	res, err := search(
		search.WithContext(ctx),
		search.WithIndex(index),
		search.WithBody(query),
		search.WithSize(e.maxResults),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s: %s", index, res.Status(), errorReasonFromResponse(res))
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	var records []domain.Record
	for _, hit := range response.Hits.Hits {
		record := domain.Record(hit.Source)
		if record == nil {
			record = domain.Record{}
		}
		if _, ok := record[idHitField]; !ok && hit.ID != "" {
			record[idHitField] = hit.ID
		}
		records = append(records, record)
	}
	return records, nil
}

// errorReasonFromResponse extracts the error reason from a response,
// falling back to the raw body.
func errorReasonFromResponse(res *esapi.Response) string {
	var (
		response struct {
			Error struct {
				Reason string `json:"reason"`
			} `json:"error"`
		}
		raw bytes.Buffer
	)
	reader := io.TeeReader(res.Body, &raw)
	if err := json.NewDecoder(reader).Decode(&response); err != nil || response.Error.Reason == "" {
		return fmt.Sprintf("raw response = %s", raw.String())
	}
	return response.Error.Reason
}
