package service

import (
	"context"
	"errors"
	"testing"

	"mycomparer/domain"
	"mycomparer/interfaces"
	"mycomparer/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsProvider(src interfaces.SettingsSource) *mock.AdapterProviderMock {
	return &mock.AdapterProviderMock{
		SettingsSourceFunc: func(engine domain.EngineKind) (interfaces.SettingsSource, bool) {
			if engine != domain.EngineFlapjack {
				return nil, false
			}
			return src, true
		},
	}
}

func TestNewFacetFallback_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.facet_fallback.go: adapters is required", func() {
		NewFacetFallback(nil, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.facet_fallback.go: logger is required", func() {
		NewFacetFallback(&mock.AdapterProviderMock{}, nil)
	})
}

func TestFacetFallback_Fetch(t *testing.T) {
	instances := []domain.BackendInstance{
		{ID: "fj-usw1", Engine: domain.EngineFlapjack, Region: "us-west-1"},
		{ID: "ts-usw1", Engine: domain.EngineTypesense, Region: "us-west-1"},
		{ID: "fj-euw1", Engine: domain.EngineFlapjack, Region: "eu-west-1"},
		{ID: "fj-local", Engine: domain.EngineFlapjack, Region: domain.LocalRegion},
	}
	brand := domain.FacetSettings{Attributes: []string{"brand"}, Values: map[string]map[string]int{"brand": {"LG": 3}}}

	tests := []struct {
		name      string
		failing   map[string]bool
		wantFrom  string
		wantOrder []string
		wantEmpty bool
	}{
		{
			name:      "local_first_and_stop_at_first_success",
			wantFrom:  "fj-local",
			wantOrder: []string{"fj-local"},
		},
		{
			name:      "falls_back_in_order",
			failing:   map[string]bool{"fj-local": true, "fj-usw1": true},
			wantFrom:  "fj-euw1",
			wantOrder: []string{"fj-local", "fj-usw1", "fj-euw1"},
		},
		{
			name:      "all_fail_is_empty_not_error",
			failing:   map[string]bool{"fj-local": true, "fj-usw1": true, "fj-euw1": true},
			wantOrder: []string{"fj-local", "fj-usw1", "fj-euw1"},
			wantEmpty: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mock.SettingsSourceMock{
				FetchFacetSettingsFunc: func(ctx context.Context, inst domain.BackendInstance, collection string) (domain.FacetSettings, error) {
					assert.Equal(t, "bestbuy", collection)
					if tt.failing[inst.ID] {
						return domain.FacetSettings{}, errors.New("unreachable")
					}
					return brand, nil
				},
			}
			ff := NewFacetFallback(settingsProvider(src), log.NewNopLogger())
			got, err := ff.Fetch(context.Background(), instances, "bestbuy")
			require.NoError(t, err)

			var order []string
			for _, c := range src.FetchFacetSettingsCalls() {
				order = append(order, c.Inst.ID)
			}
			assert.Equal(t, tt.wantOrder, order)
			if tt.wantEmpty {
				assert.True(t, got.Empty())
				assert.NotNil(t, got.Values)
				return
			}
			assert.Equal(t, tt.wantFrom, got.SourceInstanceID)
			assert.Equal(t, []string{"brand"}, got.Attributes)
		})
	}
}

func TestFacetFallback_NoSources(t *testing.T) {
	ff := NewFacetFallback(settingsProvider(&mock.SettingsSourceMock{}), log.NewNopLogger())
	got, err := ff.Fetch(context.Background(), []domain.BackendInstance{{ID: "ts-1", Engine: domain.EngineTypesense}}, "bestbuy")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestFacetFallback_CancelledStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &mock.SettingsSourceMock{
		FetchFacetSettingsFunc: func(ctx context.Context, inst domain.BackendInstance, collection string) (domain.FacetSettings, error) {
			cancel()
			return domain.FacetSettings{}, ctx.Err()
		},
	}
	ff := NewFacetFallback(settingsProvider(src), log.NewNopLogger())
	instances := []domain.BackendInstance{
		{ID: "a", Engine: domain.EngineFlapjack, Region: "us"},
		{ID: "b", Engine: domain.EngineFlapjack, Region: "us"},
	}
	_, err := ff.Fetch(ctx, instances, "bestbuy")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, src.FetchFacetSettingsCalls(), 1)
}
