package handlers

import (
	"strings"

	"mycomparer/service"
)

// fromSelectionRequest converts SelectionRequest to service.Selection.
// Returns service.APIError bad_parameter on validation failure.
func fromSelectionRequest(req SelectionRequest) (service.Selection, error) {
	region := strings.TrimSpace(req.Region)
	if region == "" {
		return service.Selection{}, service.NewBadParameterError("region is required", nil)
	}
	return service.Selection{
		Collection:    strings.TrimSpace(req.Collection),
		Region:        region,
		DevMode:       req.DevMode,
		SortBy:        strings.TrimSpace(req.SortBy),
		OneResultOnly: req.OneResultOnly,
		PageSecure:    req.PageSecure,
		Debounced:     req.Debounced,
	}, nil
}

// fromSearchRequest converts SearchRequest to service.SearchInput, dropping empty facet values.
func fromSearchRequest(req SearchRequest) service.SearchInput {
	facets := make(map[string][]string, len(req.SelectedFacets))
	for attr, values := range req.SelectedFacets {
		var kept []string
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		if attr != "" && len(kept) > 0 {
			facets[attr] = kept
		}
	}
	return service.SearchInput{Query: req.Query, CustomFilter: req.CustomFilter, SelectedFacets: facets}
}
