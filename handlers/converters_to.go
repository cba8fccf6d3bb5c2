package handlers

import (
	"mycomparer/domain"
	"mycomparer/service"
)

func toCollectionInfo(c service.CollectionSummary) CollectionInfo {
	engines := make([]string, 0, len(c.Engines))
	for _, e := range c.Engines {
		engines = append(engines, string(e))
	}
	return CollectionInfo{Name: c.Name, DocCount: c.DocCount, Engines: engines, LocalOnly: c.LocalOnly}
}

func toCollectionsResponse(collections []service.CollectionSummary) CollectionsResponse {
	out := make([]CollectionInfo, 0, len(collections))
	for _, c := range collections {
		out = append(out, toCollectionInfo(c))
	}
	return CollectionsResponse{Collections: out}
}

func toSelection(sel service.Selection) SelectionRequest {
	return SelectionRequest{
		Collection:    sel.Collection,
		Region:        sel.Region,
		DevMode:       sel.DevMode,
		SortBy:        sel.SortBy,
		OneResultOnly: sel.OneResultOnly,
		PageSecure:    sel.PageSecure,
		Debounced:     sel.Debounced,
	}
}

// toSlotsResponse merges the snapshot with its chart rows; both are in slot order.
func toSlotsResponse(snap service.Snapshot, rows []service.ChartRow) SlotsResponse {
	slots := make([]SlotInfo, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, SlotInfo{
			SlotID:     r.SlotID,
			Label:      r.Label,
			Engine:     string(r.Engine),
			InstanceID: r.InstanceID,
			Region:     r.Region,
			Note:       r.Note,
			Active:     r.Active,
			Reason:     r.Reason,
			LatencyMs:  r.LatencyMs,
			ClientID:   snap.Clients[r.InstanceID],
		})
	}
	return SlotsResponse{
		Pass:      snap.Pass,
		Selection: toSelection(snap.Selection),
		Slots:     slots,
		Facets:    toFacetsInfo(snap.Facets),
	}
}

func toFacetsInfo(f domain.FacetSettings) FacetsInfo {
	attrs := f.Attributes
	if attrs == nil {
		attrs = []string{}
	}
	values := f.Values
	if values == nil {
		values = map[string]map[string]int{}
	}
	return FacetsInfo{SourceInstanceID: f.SourceInstanceID, Attributes: attrs, Values: values}
}

func toSearchResponse(results []service.SlotResult) SearchResponse {
	out := make([]SlotResultInfo, 0, len(results))
	for _, r := range results {
		info := SlotResultInfo{
			SlotID:     r.SlotID,
			Engine:     string(r.Engine),
			InstanceID: r.InstanceID,
			Hits:       r.Hits,
			NbHits:     r.NbHits,
			Reason:     r.Reason,
		}
		if info.Hits == nil {
			info.Hits = []map[string]any{}
		}
		if r.Err != nil {
			info.Error = r.Err.Error()
		}
		out = append(out, info)
	}
	return SearchResponse{Results: out}
}

func toSamplesResponse(samples []domain.MetricsSample, last map[string]int64) SamplesResponse {
	out := make([]SampleInfo, 0, len(samples))
	for _, s := range samples {
		out = append(out, SampleInfo{
			InstanceID: s.InstanceID,
			LatencyMs:  s.LatencyMs,
			HitCount:   s.HitCount,
			OffsetMs:   s.TimestampOffset.Milliseconds(),
			Query:      s.QueryText,
			Collection: s.CollectionName,
			Debounced:  s.Debounced,
		})
	}
	if last == nil {
		last = map[string]int64{}
	}
	return SamplesResponse{Samples: out, LastLatency: last}
}
