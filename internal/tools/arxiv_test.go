package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const arxivResultsHTML = `
<html><body>
<ol>
  <li class="arxiv-result">
    <p class="list-title"><a href="https://arxiv.org/abs/2501.00001">arXiv:2501.00001</a></p>
    <p class="title">Sample Paper on Agent Pipelines</p>
    <p class="abstract"><span class="abstract-full">We study orchestration of agents. △ Less</span></p>
    <p class="is-size-7">Submitted 12 August 2026; originally announced August 2026.</p>
  </li>
  <li class="arxiv-result">
    <p class="list-title"><a href="https://arxiv.org/abs/2501.00002">arXiv:2501.00002</a></p>
    <p class="title">Second Paper</p>
    <p class="abstract"><span class="abstract-full">Another abstract.</span></p>
    <p class="is-size-7">Submitted 3 August 2026.</p>
  </li>
</ol>
</body></html>`

func TestArxivSearchParsesResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "agent pipelines" {
			t.Errorf("unexpected query: %s", got)
		}
		w.Write([]byte(arxivResultsHTML))
	}))
	defer server.Close()

	tool := NewArxivSearch()
	tool.endpoint = server.URL

	out, err := tool.Call(context.Background(), json.RawMessage(`{"query":"agent pipelines"}`))
	if err != nil {
		t.Fatalf("call returned error: %v", err)
	}

	var papers []arxivPaper
	if err := json.Unmarshal([]byte(out), &papers); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(papers))
	}
	if papers[0].Title != "Sample Paper on Agent Pipelines" {
		t.Errorf("unexpected title: %s", papers[0].Title)
	}
	if papers[0].URL != "https://arxiv.org/abs/2501.00001" {
		t.Errorf("unexpected url: %s", papers[0].URL)
	}
	if papers[0].Published != "2026-08-12" {
		t.Errorf("unexpected date: %s", papers[0].Published)
	}
	if strings.Contains(papers[0].Abstract, "△ Less") {
		t.Errorf("abstract still contains expand marker: %s", papers[0].Abstract)
	}
}

func TestArxivSearchHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	tool := NewArxivSearch()
	tool.endpoint = server.URL

	if _, err := tool.Call(context.Background(), json.RawMessage(`{"query":"x"}`)); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
}

func TestArxivSearchEmptyQuery(t *testing.T) {
	t.Parallel()

	tool := NewArxivSearch()
	if _, err := tool.Call(context.Background(), json.RawMessage(`{"query":"  "}`)); err == nil {
		t.Fatal("expected error on empty query")
	}
}
