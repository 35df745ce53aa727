package elasticsearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

// fakeTransport answers every request with a canned response.
type fakeTransport struct {
	status   int
	body     string
	requests []*http.Request
	bodies   []string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(data))
	}
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: f.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Request:    req,
	}, nil
}

func newTestExecutor(t *testing.T, transport *fakeTransport) *Executor {
	t.Helper()
	cli, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: transport,
	})
	require.NoError(t, err)

	executor, err := NewExecutor(nil, WithClient(cli))
	require.NoError(t, err)
	return executor
}

func TestBuildQuery(t *testing.T) {
	reader, err := BuildQuery(domain.FilterExpression{
		Table:  "Contact",
		Fields: []string{"Name", "Email"},
		Term:   "smi*th?",
	})
	require.NoError(t, err)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	var body struct {
		Query struct {
			Bool struct {
				MinimumShouldMatch any `json:"minimum_should_match"`
				Should             []map[string]map[string]struct {
					Wildcard        string `json:"wildcard"`
					CaseInsensitive bool   `json:"case_insensitive"`
				} `json:"should"`
			} `json:"bool"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(data, &body))

	should := body.Query.Bool.Should
	require.Len(t, should, 2)
	assert.Equal(t, `*smi\*th\?*`, should[0]["wildcard"]["Name"].Wildcard)
	assert.True(t, should[0]["wildcard"]["Name"].CaseInsensitive)
	assert.Equal(t, `*smi\*th\?*`, should[1]["wildcard"]["Email"].Wildcard)
	assert.EqualValues(t, "1", body.Query.Bool.MinimumShouldMatch)
}

func TestBuildQuery_TermIsJSONEncoded(t *testing.T) {
	term := `"}},{"match_all":{}}`
	reader, err := BuildQuery(domain.FilterExpression{Table: "Account", Fields: []string{"Name"}, Term: term})
	require.NoError(t, err)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "match_all")
	assert.Contains(t, string(data), `\"}},{\"match_all\":{}}`)
}

func TestBuildQuery_Invalid(t *testing.T) {
	_, err := BuildQuery(domain.FilterExpression{Table: "Account"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIndexName(t *testing.T) {
	assert.Equal(t, "account__ap", IndexName("Account__ap"))
}

func TestExecute_DecodesHits(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK, body: `{
		"hits": {"hits": [
			{"_id": "1", "_source": {"Id": "001", "Name": "Acme"}},
			{"_id": "2", "_source": {"Name": "Globex", "Employees": 12}}
		]}
	}`}
	executor := newTestExecutor(t, transport)

	records, err := executor.Execute(context.Background(), domain.FilterExpression{
		Table: "Account", Fields: []string{"Name"}, Term: "a",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "001", records[0]["Id"])
	assert.Equal(t, "2", records[1]["Id"])
	assert.Equal(t, float64(12), records[1]["Employees"])

	require.Len(t, transport.requests, 1)
	assert.Equal(t, "/account/_search", transport.requests[0].URL.Path)
	assert.Contains(t, transport.bodies[0], `"wildcard"`)
}

func TestExecute_NoHitsIsNil(t *testing.T) {
	executor := newTestExecutor(t, &fakeTransport{status: http.StatusOK, body: `{"hits":{"hits":[]}}`})

	records, err := executor.Execute(context.Background(), domain.FilterExpression{
		Table: "Account", Fields: []string{"Name"}, Term: "a",
	})
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestExecute_ErrorResponse(t *testing.T) {
	executor := newTestExecutor(t, &fakeTransport{
		status: http.StatusNotFound,
		body:   `{"error":{"reason":"no such index [account]"},"status":404}`,
	})

	_, err := executor.Execute(context.Background(), domain.FilterExpression{
		Table: "Account", Fields: []string{"Name"}, Term: "a",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such index [account]")
}

func TestNewExecutor_RequiresAddresses(t *testing.T) {
	_, err := NewExecutor(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}
