package service

import (
	"context"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// FacetFallback loads facet settings for a collection from the first instance that answers.
type FacetFallback struct {
	adapters interfaces.AdapterProvider
	logger   log.Logger
}

// NewFacetFallback creates the facet settings loader. Panics on nil adapters or logger.
func NewFacetFallback(adapters interfaces.AdapterProvider, logger log.Logger) *FacetFallback {
	return &FacetFallback{
		adapters: helpers.NilPanic(adapters, "service.facet_fallback.go: adapters is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.facet_fallback.go: logger is required"), "component", "facet_fallback"),
	}
}

// Sources returns the instances able to supply facet settings, local ones first, each group in input order.
func (f *FacetFallback) Sources(instances []domain.BackendInstance) []domain.BackendInstance {
	var local, remote []domain.BackendInstance
	for _, inst := range instances {
		if _, ok := f.adapters.SettingsSource(inst.Engine); !ok {
			continue
		}
		if inst.IsLocal() {
			local = append(local, inst)
		} else {
			remote = append(remote, inst)
		}
	}
	return append(local, remote...)
}

// Fetch tries the sources of instances one at a time and returns the first successful answer.
//
// Parameters: ctx: checked after every attempt; instances: candidates (typically the active slots'
// instances); collection: collection whose settings are wanted.
//
// Returns: (settings, nil) from the first instance that answered; (empty settings, nil) when every source
// failed or none exists; (zero, ctx error) when ctx is done.
//
// Called from Comparator.Apply when the selected collection changed.
func (f *FacetFallback) Fetch(ctx context.Context, instances []domain.BackendInstance, collection string) (domain.FacetSettings, error) {
	for _, inst := range f.Sources(instances) {
		src, _ := f.adapters.SettingsSource(inst.Engine)
		settings, err := src.FetchFacetSettings(ctx, inst, collection)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.FacetSettings{}, ctxErr
		}
		if err != nil {
			level.Debug(f.logger).Log("msg", "facet settings unavailable", "instance", inst.ID, "collection", collection, "err", err)
			continue
		}
		settings.SourceInstanceID = inst.ID
		if settings.Values == nil {
			settings.Values = map[string]map[string]int{}
		}
		return settings, nil
	}
	return emptyFacets(), nil
}

func emptyFacets() domain.FacetSettings {
	return domain.FacetSettings{Attributes: []string{}, Values: map[string]map[string]int{}}
}
