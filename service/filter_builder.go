package service

import (
	"regexp"
	"sort"
	"strings"

	"mycomparer/domain"
)

var (
	meiliBareComparison   = regexp.MustCompile(`(\w+):("?[^"'\s]+)`)
	meiliQuotedComparison = regexp.MustCompile(`(\w+):"([^"]+)"`)
	typesenseOr           = regexp.MustCompile(`(?i) OR `)
	typesenseAnd          = regexp.MustCompile(`(?i) AND `)
)

// BuildFilterString renders a custom filter plus selected facet values in the dialect of engine.
//
// Parameters: customFilter: user expression in algolia syntax ("brand:LG AND price > 10"); selectedFacets:
// attribute → selected values, attributes with no values are skipped; engine: target dialect.
//
// Dialects: meilisearch turns "a:b" into "a = b" and facets into (a = "v" OR ...), joined by " AND ";
// typesense turns OR/AND into ||/&& and facets into a:=[`v`, ...], joined by " && "; flapjack and algolia
// keep the custom filter and render facets as (a:"v" OR ...), joined by " AND ". Attributes are emitted
// in sorted order.
//
// Returns: the filter expression, "" when there is nothing to filter.
//
// Called from Comparator.Search for every slot.
func BuildFilterString(customFilter string, selectedFacets map[string][]string, engine domain.EngineKind) string {
	var parts []string
	if custom := strings.TrimSpace(customFilter); custom != "" {
		switch engine {
		case domain.EngineMeilisearch:
			custom = meiliBareComparison.ReplaceAllString(custom, "$1 = $2")
			custom = meiliQuotedComparison.ReplaceAllString(custom, `$1 = "$2"`)
		case domain.EngineTypesense:
			custom = typesenseOr.ReplaceAllString(custom, " || ")
			custom = typesenseAnd.ReplaceAllString(custom, " && ")
		}
		parts = append(parts, custom)
	}

	attrs := make([]string, 0, len(selectedFacets))
	for attr, values := range selectedFacets {
		if len(values) > 0 {
			attrs = append(attrs, attr)
		}
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		values := selectedFacets[attr]
		terms := make([]string, 0, len(values))
		switch engine {
		case domain.EngineMeilisearch:
			for _, v := range values {
				terms = append(terms, attr+` = "`+v+`"`)
			}
			parts = append(parts, "("+strings.Join(terms, " OR ")+")")
		case domain.EngineTypesense:
			for _, v := range values {
				terms = append(terms, "`"+v+"`")
			}
			parts = append(parts, attr+":=["+strings.Join(terms, ", ")+"]")
		default:
			for _, v := range values {
				terms = append(terms, attr+`:"`+v+`"`)
			}
			parts = append(parts, "("+strings.Join(terms, " OR ")+")")
		}
	}

	if engine == domain.EngineTypesense {
		return strings.Join(parts, " && ")
	}
	return strings.Join(parts, " AND ")
}
