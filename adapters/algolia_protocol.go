package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"

	"mycomparer/domain"
)

// Flapjack speaks the algolia REST dialect; both adapters share the calls below.

const (
	headerAlgoliaAPIKey = "x-algolia-api-key"
	headerAlgoliaAppID  = "x-algolia-application-id"
)

type algoliaIndexesResponse struct {
	Items []struct {
		Name      string `json:"name"`
		IndexName string `json:"indexName"`
		Entries   int64  `json:"entries"`
	} `json:"items"`
}

type algoliaQueryRequest struct {
	Query       string   `json:"query"`
	HitsPerPage int      `json:"hitsPerPage"`
	Filters     string   `json:"filters,omitempty"`
	Sort        []string `json:"sort,omitempty"`
	Facets      []string `json:"facets,omitempty"`
}

type algoliaQueryResult struct {
	Hits   []map[string]any          `json:"hits"`
	NbHits *int                      `json:"nbHits"`
	Facets map[string]map[string]int `json:"facets"`
}

type algoliaQueryResponse struct {
	algoliaQueryResult
	Results []algoliaQueryResult `json:"results"`
}

type algoliaSettingsResponse struct {
	AttributesForFaceting []string `json:"attributesForFaceting"`
}

// facetModifier matches "filterOnly(attr)" and "searchable(attr)".
var facetModifier = regexp.MustCompile(`^(filterOnly|searchable)\((.+)\)$`)

func algoliaHeaders(appID, apiKey string) map[string]string {
	return map[string]string{
		headerAlgoliaAPIKey: apiKey,
		headerAlgoliaAppID:  appID,
	}
}

// algoliaListIndexes lists GET {base}/1/indexes. A non-success status yields an empty listing;
// entries is the document count.
func algoliaListIndexes(ctx context.Context, client *http.Client, base string, headers map[string]string) ([]domain.CollectionInfo, error) {
	var raw algoliaIndexesResponse
	err := doJSON(ctx, client, http.MethodGet, base+"/1/indexes", headers, nil, &raw)
	if errors.Is(err, ErrUnexpectedStatus) {
		return []domain.CollectionInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.CollectionInfo, 0, len(raw.Items))
	for _, item := range raw.Items {
		name := item.Name
		if name == "" {
			name = item.IndexName
		}
		out = append(out, domain.CollectionInfo{Name: name, DocCount: item.Entries, Fields: []string{}})
	}
	return out, nil
}

// algoliaQuery runs POST {base}/1/indexes/{index}/query and normalizes nbHits from either the
// multi-query envelope (results[0]) or the single-query body.
func algoliaQuery(ctx context.Context, client *http.Client, base, index string, headers map[string]string, body algoliaQueryRequest) (algoliaQueryResult, error) {
	var raw algoliaQueryResponse
	reqURL := base + "/1/indexes/" + url.PathEscape(index) + "/query"
	if err := doJSON(ctx, client, http.MethodPost, reqURL, headers, body, &raw); err != nil {
		return algoliaQueryResult{}, err
	}
	if len(raw.Results) > 0 {
		return raw.Results[0], nil
	}
	return raw.algoliaQueryResult, nil
}

func (r algoliaQueryResult) toSearchResult() domain.SearchResult {
	res := domain.SearchResult{Hits: r.Hits}
	if r.NbHits != nil {
		res.NbHits = *r.NbHits
	}
	if res.Hits == nil {
		res.Hits = []map[string]any{}
	}
	return res
}

// algoliaFacetSettings reads attributesForFaceting and, when there are any, the facet value counts.
func algoliaFacetSettings(ctx context.Context, client *http.Client, base, index string, headers map[string]string) (domain.FacetSettings, error) {
	var settings algoliaSettingsResponse
	reqURL := base + "/1/indexes/" + url.PathEscape(index) + "/settings"
	if err := doJSON(ctx, client, http.MethodGet, reqURL, headers, nil, &settings); err != nil {
		return domain.FacetSettings{}, err
	}
	attrs := make([]string, 0, len(settings.AttributesForFaceting))
	for _, raw := range settings.AttributesForFaceting {
		attrs = append(attrs, facetModifier.ReplaceAllString(raw, "$2"))
	}
	if len(attrs) == 0 {
		return domain.FacetSettings{Attributes: []string{}, Values: map[string]map[string]int{}}, nil
	}
	res, err := algoliaQuery(ctx, client, base, index, headers, algoliaQueryRequest{Facets: attrs})
	if err != nil {
		return domain.FacetSettings{}, err
	}
	values := res.Facets
	if values == nil {
		values = map[string]map[string]int{}
	}
	return domain.FacetSettings{Attributes: attrs, Values: values}, nil
}
