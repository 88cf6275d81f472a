// Package agent discovers maritime threats by combining web search results
// with a language model that distills them into structured reports.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/model"
)

var searchQueries = []string{
	"maritime security threats shipping lanes",
	"piracy attacks commercial vessels",
	"naval conflict shipping route disruption",
	"sanctions tariffs maritime trade",
	"port strikes shipping disruption",
}

const threatPrompt = `You are an expert maritime geopolitical analyst. Your task is to identify and summarize current geopolitical threats to the maritime industry and tariff fluctuations based on the provided search results.
Use only data from the last two weeks. Use the latest news articles and reports. Use various sources.
Extract the following information for each relevant threat:
- title: A concise title for the threat or tariff fluctuation.
- region: The primary geographical region affected (e.g., "Red Sea", "South China Sea", "Global").
- countries: List of countries impacted by the threat (e.g., ["Iran", "Saudi Arabia", "UAE"]).
- category: A broad category for the threat (e.g., "Geopolitical Instability", "Piracy", "Environmental", "Cyber Attack", "Military Conflict").
- description: A brief summary (2-3 sentences) of the threat.
- potential_impact: A brief description of the potential impact on the maritime industry (e.g., "Increased shipping costs", "Disruption of trade routes", "Increased risk of attacks on vessels").
- source_urls: A list of URLs from the search results that support this threat.
- date_mentioned: The date when the threat was mentioned in the sources. If no date is available, use "Not specified".

Format your response as a JSON object with a single key "reports" containing a list of threat objects.

Search results:
`

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

type Agent struct {
	search *TavilyClient
	llm    *GeminiClient
}

func New(env *bootstrap.Env) model.ThreatFinder {
	return &Agent{
		search: NewTavilyClient(env.Agent.TavilyAPIKey, env.Agent.MaxResults),
		llm:    NewGeminiClient(env.Agent.GeminiAPIKey, env.Agent.GeminiModel),
	}
}

// FindThreats runs the search queries, feeds the deduplicated results to the
// model and parses its report list. A failing query is logged and skipped.
func (a *Agent) FindThreats(ctx context.Context) ([]*model.ThreatReport, error) {
	seen := mapset.NewSet[string]()
	var results []SearchResult

	for _, query := range searchQueries {
		found, err := a.search.Search(ctx, query)
		if err != nil {
			log.Printf("Search for %q failed: %v", query, err)
			continue
		}
		for _, result := range found {
			if seen.Add(result.URL) {
				results = append(results, result)
			}
		}
	}

	if len(results) == 0 {
		return nil, nil
	}

	output, err := a.llm.Generate(ctx, buildPrompt(results))
	if err != nil {
		return nil, err
	}

	return ExtractReports(output)
}

func buildPrompt(results []SearchResult) string {
	var sb strings.Builder
	sb.WriteString(threatPrompt)
	for _, result := range results {
		sb.WriteString(fmt.Sprintf("\n[%s] %s (%s)\n%s\n", result.PublishedDate, result.Title, result.URL, result.Content))
	}
	return sb.String()
}

// ExtractReports pulls the report list out of raw model output. The model
// usually wraps its JSON in a markdown fence; plain JSON works too.
func ExtractReports(raw string) ([]*model.ThreatReport, error) {
	text := raw
	if m := jsonFenceRe.FindStringSubmatch(raw); m != nil {
		text = m[1]
	} else {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end == -1 || end < start {
			return nil, fmt.Errorf("no JSON object found in model output")
		}
		text = raw[start : end+1]
	}

	var payload struct {
		Reports []*model.ThreatReport `json:"reports"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return nil, fmt.Errorf("could not parse model output: %w", err)
	}
	return payload.Reports, nil
}
