package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	arxivEndpoint   = "https://arxiv.org/search/"
	arxivMaxResults = 5
)

var arxivDateExpr = regexp.MustCompile(`\d{1,2} [A-Za-z]+ \d{4}`)

// ArxivSearch queries the arXiv search page and extracts paper metadata from
// the result listing.
type ArxivSearch struct {
	endpoint string
	client   *http.Client
}

var _ Tool = (*ArxivSearch)(nil)

// NewArxivSearch constructs the academic search tool.
func NewArxivSearch() *ArxivSearch {
	return &ArxivSearch{
		endpoint: arxivEndpoint,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (a *ArxivSearch) Name() string { return "arxiv_search" }

func (a *ArxivSearch) Description() string {
	return "Search arXiv for academic papers about a query. Returns title, url, abstract, and publication date."
}

func (a *ArxivSearch) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	}
}

type arxivPaper struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Abstract  string `json:"abstract"`
	Published string `json:"published"`
}

// Call fetches the arXiv result page for the query and renders the top
// papers as JSON text.
func (a *ArxivSearch) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if strings.TrimSpace(input.Query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}

	doc, err := a.fetchDocument(ctx, input.Query)
	if err != nil {
		return "", err
	}

	papers := extractPapers(doc)
	out, err := json.Marshal(papers)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (a *ArxivSearch) fetchDocument(ctx context.Context, query string) (*goquery.Document, error) {
	values := url.Values{}
	values.Set("query", query)
	values.Set("searchtype", "all")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Thinkle/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractPapers(doc *goquery.Document) []arxivPaper {
	papers := make([]arxivPaper, 0, arxivMaxResults)

	doc.Find("li.arxiv-result").EachWithBreak(func(i int, result *goquery.Selection) bool {
		title := strings.TrimSpace(result.Find("p.title").First().Text())

		href, _ := result.Find("p.list-title a").First().Attr("href")
		abstract := strings.TrimSpace(result.Find("span.abstract-full").First().Text())
		if abstract == "" {
			abstract = strings.TrimSpace(result.Find("p.abstract").First().Text())
		}
		abstract = strings.TrimSuffix(abstract, "△ Less")
		abstract = strings.TrimSpace(abstract)

		published := ""
		dateText := result.Find("p.is-size-7").First().Text()
		if match := arxivDateExpr.FindString(dateText); match != "" {
			if parsed, err := time.Parse("2 January 2006", match); err == nil {
				published = parsed.Format("2006-01-02")
			}
		}

		if title == "" || href == "" {
			return true
		}

		papers = append(papers, arxivPaper{
			Title:     title,
			URL:       href,
			Abstract:  abstract,
			Published: published,
		})
		return len(papers) < arxivMaxResults
	})

	return papers
}
