package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarmer_Panics(t *testing.T) {
	clock := NewTimeProvider(helpers.TestNow)
	assert.PanicsWithValue(t, "service.warmup.go: http client is required", func() {
		NewWarmer(nil, &mock.AdapterProviderMock{}, clock, time.Second, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.warmup.go: adapters is required", func() {
		NewWarmer(http.DefaultClient, nil, clock, time.Second, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.warmup.go: clock is required", func() {
		NewWarmer(http.DefaultClient, &mock.AdapterProviderMock{}, nil, time.Second, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.warmup.go: logger is required", func() {
		NewWarmer(http.DefaultClient, &mock.AdapterProviderMock{}, clock, time.Second, nil)
	})
}

func TestTargets(t *testing.T) {
	instances := []domain.BackendInstance{
		{ID: "secure", Region: "us", Address: "https://a", Enabled: true},
		{ID: "insecure", Region: "us", Address: "http://b", Enabled: true},
		{ID: "local", Region: domain.LocalRegion, Address: "http://localhost:7700", Enabled: true},
		{ID: "disabled", Region: "us", Address: "https://c", Enabled: false},
		{ID: "bare", Region: "eu", Address: "ts.example.com", Enabled: true},
	}
	ids := func(in []domain.BackendInstance) []string {
		var out []string
		for _, i := range in {
			out = append(out, i.ID)
		}
		return out
	}
	assert.Equal(t, []string{"secure", "bare"}, ids(Targets(instances, true)))
	assert.Equal(t, []string{"secure", "insecure", "bare"}, ids(Targets(instances, false)))
}

func TestWarmer_Warmup(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/slow/health" {
			<-r.Context().Done()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := &mock.EngineAdapterMock{
		EngineFunc: func() domain.EngineKind { return domain.EngineFlapjack },
		HealthURLFunc: func(inst domain.BackendInstance) string {
			return inst.Address + "/health"
		},
	}
	instances := []domain.BackendInstance{
		{ID: "fast", Engine: domain.EngineFlapjack, Region: "us", Address: server.URL + "/fast", Enabled: true},
		{ID: "slow", Engine: domain.EngineFlapjack, Region: "us", Address: server.URL + "/slow", Enabled: true},
		{ID: "unknown", Engine: domain.EngineAlgolia, Region: "us", Address: server.URL, Enabled: true},
	}
	w := NewWarmer(server.Client(), providerFor(adapter), NewTimeProvider(helpers.TestNow), 50*time.Millisecond, log.NewNopLogger())

	results := w.Warmup(context.Background(), instances, false)
	require.Len(t, results, 3)
	assert.Equal(t, "fast", results[0].InstanceID)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "slow", results[1].InstanceID)
	assert.ErrorIs(t, results[1].Err, context.DeadlineExceeded)
	assert.Error(t, results[2].Err)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"/fast/health", "/slow/health"}, paths)
}

func TestWarmer_Warmup_Elapsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	adapter := &mock.EngineAdapterMock{
		EngineFunc:    func() domain.EngineKind { return domain.EngineFlapjack },
		HealthURLFunc: func(inst domain.BackendInstance) string { return inst.Address + "/health" },
	}
	w := NewWarmer(server.Client(), providerFor(adapter), NewTimeProvider(helpers.TestClock(40*time.Millisecond)), time.Second, log.NewNopLogger())

	results := w.Warmup(context.Background(), []domain.BackendInstance{
		{ID: "fj-1", Engine: domain.EngineFlapjack, Region: "us", Address: server.URL, Enabled: true},
	}, false)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 40*time.Millisecond, results[0].Elapsed)
}
