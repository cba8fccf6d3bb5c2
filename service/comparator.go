package service

import (
	"context"
	"fmt"
	"sync"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// Selection is the user-driven configuration the comparison is resolved against.
type Selection struct {
	Collection    string `json:"collection"`
	Region        string `json:"region"`
	DevMode       bool   `json:"dev_mode"`
	SortBy        string `json:"sort_by"`
	OneResultOnly bool   `json:"one_result_only"`
	PageSecure    bool   `json:"page_secure"`
	Debounced     bool   `json:"debounced"`
}

// Snapshot is the published result of the newest completed Apply.
// Clients maps instance id to the id of the handle serving it.
type Snapshot struct {
	Pass      uint64
	Selection Selection
	Slots     []domain.ResolvedSlot
	Clients   map[string]string
	Facets    domain.FacetSettings
}

// ChartRow is one slot as shown in the latency chart.
type ChartRow struct {
	SlotID     string
	Label      string
	Engine     domain.EngineKind
	InstanceID string
	Region     string
	Note       string
	LatencyMs  *int64
	Active     bool
	Reason     string
}

// CollectionSummary is one entry of the collection picker.
type CollectionSummary struct {
	Name      string
	DocCount  int64
	Engines   []domain.EngineKind
	LocalOnly bool
}

// SearchInput is one query typed by the user.
type SearchInput struct {
	Query          string
	CustomFilter   string
	SelectedFacets map[string][]string
}

// SlotResult is the outcome of a query on one slot. Reason is set for slots that were not queried
// because they are blocked; Err for queried slots that failed.
type SlotResult struct {
	SlotID     string
	Engine     domain.EngineKind
	InstanceID string
	Hits       []map[string]any
	NbHits     int
	Reason     string
	Err        error
}

// Comparator ties the pieces together for one comparison session: it owns the collection index, the current
// selection and the published snapshot, and runs discovery, resolution passes and searches.
// Fields under mu: index, discovered, selection, snapshot, clients, facetsFor (collection the snapshot's
// facets belong to), pass, cancel.
type Comparator struct {
	registry   domain.Registry
	discoverer interfaces.Discoverer
	cache      *ClientCache
	facets     *FacetFallback
	recorder   interfaces.MetricsRecorder
	logger     log.Logger

	mu         sync.RWMutex
	index      domain.CollectionIndex
	discovered bool
	selection  Selection
	snapshot   Snapshot
	clients    map[string]interfaces.ClientHandle
	facetsFor  string
	pass       uint64
	cancel     context.CancelFunc
}

// NewComparator creates a session with an empty index. Panics on nil discoverer, cache, facets, recorder or logger.
//
// Parameters: registry: validated instances and slots; discoverer: collection discovery; cache: client
// cache; facets: facet settings loader; recorder: read for chart latencies; initial: starting selection
// (from config defaults); logger: logger.
//
// Called from cmd/main.
func NewComparator(
	registry domain.Registry,
	discoverer interfaces.Discoverer,
	cache *ClientCache,
	facets *FacetFallback,
	recorder interfaces.MetricsRecorder,
	initial Selection,
	logger log.Logger,
) *Comparator {
	return &Comparator{
		registry:   registry,
		discoverer: helpers.NilPanic(discoverer, "service.comparator.go: discoverer is required"),
		cache:      helpers.NilPanic(cache, "service.comparator.go: cache is required"),
		facets:     helpers.NilPanic(facets, "service.comparator.go: facets is required"),
		recorder:   helpers.NilPanic(recorder, "service.comparator.go: recorder is required"),
		logger:     log.With(helpers.NilPanic(logger, "service.comparator.go: logger is required"), "component", "comparator"),
		index:      domain.CollectionIndex{},
		selection:  initial,
		snapshot:   Snapshot{Selection: initial, Slots: []domain.ResolvedSlot{}, Clients: map[string]string{}, Facets: emptyFacets()},
		clients:    map[string]interfaces.ClientHandle{},
	}
}

// Discover runs a discovery pass and replaces the collection index. When the selected collection is not in
// the new index the selection falls back to the first collection not prefixed "test_". Facets are refetched
// on the next Apply.
//
// Returns: the new index.
//
// Called from cmd/main at startup and from the POST /v1/discover handler; both follow with Apply.
func (c *Comparator) Discover(ctx context.Context) domain.CollectionIndex {
	index := c.discoverer.Discover(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = index
	c.discovered = true
	c.facetsFor = ""
	if _, ok := index[c.selection.Collection]; !ok {
		fallback := index.DefaultCollection()
		level.Info(c.logger).Log("msg", "selected collection not found, falling back", "collection", c.selection.Collection, "fallback", fallback)
		c.selection.Collection = fallback
	}
	return index
}

// Apply resolves the slots for sel, refreshes the client cache, loads facet settings when the collection
// changed, and publishes the result. A newer Apply cancels this one; a superseded Apply publishes nothing.
//
// Parameters: ctx: request context; sel: new selection, an empty collection means the index default.
//
// Returns: (published snapshot, nil); (zero, error wrapping ErrStalePass) when superseded; (zero, ctx error).
//
// Called from cmd/main after the first discovery and from the PUT /v1/selection and POST /v1/discover handlers.
func (c *Comparator) Apply(ctx context.Context, sel Selection) (Snapshot, error) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.pass++
	pass := c.pass
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	index := c.index
	if sel.Collection == "" {
		sel.Collection = index.DefaultCollection()
	}
	prevFacets, facetsFor := c.snapshot.Facets, c.facetsFor
	c.mu.Unlock()
	defer cancel()

	slots := ResolveSlots(c.registry.Slots, c.registry.Instances, index, sel.Collection, sel.Region, sel.DevMode, sel.PageSecure)
	for _, s := range slots {
		level.Debug(c.logger).Log("msg", "resolved slot", "slot", s.SlotID, "instance", s.InstanceID(), "reason", s.BlockReason)
	}

	shaping := domain.ShapingParams{Collection: sel.Collection, SortBy: sel.SortBy, PageSize: domain.PageSizeFor(sel.OneResultOnly)}
	clients, err := c.cache.Refresh(ctx, slots, shaping)
	if err != nil {
		return Snapshot{}, c.passErr(pass, err)
	}

	var activeInstances []domain.BackendInstance
	for _, s := range slots {
		if s.Active() {
			activeInstances = append(activeInstances, *s.Instance)
		}
	}
	facets, facetsKey := emptyFacets(), ""
	switch {
	case sel.Collection == "" || len(c.facets.Sources(activeInstances)) == 0:
	case facetsFor == sel.Collection:
		facets, facetsKey = prevFacets, facetsFor
	default:
		facets, err = c.facets.Fetch(ctx, activeInstances, sel.Collection)
		if err != nil {
			return Snapshot{}, c.passErr(pass, err)
		}
		facetsKey = sel.Collection
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if pass != c.pass {
		return Snapshot{}, fmt.Errorf("%w: apply %d", ErrStalePass, pass)
	}
	handleIDs := make(map[string]string, len(clients))
	for id, h := range clients {
		handleIDs[id] = h.ID()
	}
	c.selection = sel
	c.clients = clients
	c.facetsFor = facetsKey
	c.snapshot = Snapshot{Pass: pass, Selection: sel, Slots: slots, Clients: handleIDs, Facets: facets}
	return c.snapshot, nil
}

// passErr reports a failure of pass as stale when a newer pass has started meanwhile.
func (c *Comparator) passErr(pass uint64, err error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if pass != c.pass {
		return fmt.Errorf("%w: apply %d", ErrStalePass, pass)
	}
	return err
}

// Search runs in on every active slot of the published snapshot concurrently. Each slot gets the filter in its
// engine's dialect; a failing slot never affects the others.
//
// Returns: one result per resolved slot, in slot order.
//
// Called from the POST /v1/search handler.
func (c *Comparator) Search(ctx context.Context, in SearchInput) []SlotResult {
	c.mu.RLock()
	snap, clients, sel := c.snapshot, c.clients, c.selection
	c.mu.RUnlock()

	results := make([]SlotResult, len(snap.Slots))
	var g errgroup.Group
	for i, slot := range snap.Slots {
		results[i] = SlotResult{SlotID: slot.SlotID, Engine: slot.Engine, InstanceID: slot.InstanceID(), Hits: []map[string]any{}}
		if !slot.Active() {
			results[i].Reason = slot.BlockReason
			continue
		}
		if sortUnsupported(slot, sel) {
			results[i].Reason = domain.ReasonSortUnsupported
			continue
		}
		h, ok := clients[slot.InstanceID()]
		if !ok {
			results[i].Err = fmt.Errorf("%w: %s", ErrNoClient, slot.SlotID)
			continue
		}
		req := domain.SearchRequest{
			Query:       in.Query,
			Collection:  sel.Collection,
			Filters:     BuildFilterString(in.CustomFilter, in.SelectedFacets, slot.Engine),
			HitsPerPage: domain.PageSizeFor(sel.OneResultOnly),
			Debounced:   sel.Debounced,
		}
		g.Go(func() error {
			res, err := h.Search(ctx, req)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Hits = res.Hits
			results[i].NbHits = res.NbHits
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func sortUnsupported(slot domain.ResolvedSlot, sel Selection) bool {
	return sel.SortBy != "" && slot.Engine == domain.EngineAlgolia
}

// Chart returns the latency chart rows for the published snapshot, with the latest latency per instance.
func (c *Comparator) Chart() []ChartRow {
	c.mu.RLock()
	snap, sel := c.snapshot, c.selection
	c.mu.RUnlock()
	latency := c.recorder.LastLatency()

	rows := make([]ChartRow, 0, len(snap.Slots))
	for _, slot := range snap.Slots {
		row := ChartRow{SlotID: slot.SlotID, Label: slot.Label, Engine: slot.Engine, Active: slot.Active(), Reason: slot.BlockReason}
		if slot.Instance != nil {
			row.InstanceID = slot.Instance.ID
			row.Region = slot.Instance.Region
			row.Note = slot.Instance.Note
			if ms, ok := latency[slot.Instance.ID]; ok {
				row.LatencyMs = &ms
			}
		}
		if sortUnsupported(slot, sel) {
			row.Active = false
			if row.Reason == "" {
				row.Reason = domain.ReasonSortUnsupported
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Collections lists the discovered collections in name order. A collection found only on local instances
// is flagged LocalOnly.
func (c *Comparator) Collections() []CollectionSummary {
	c.mu.RLock()
	index := c.index
	c.mu.RUnlock()

	out := make([]CollectionSummary, 0, len(index))
	for _, name := range index.Names() {
		out = append(out, summarize(index[name]))
	}
	return out
}

// Collection returns the summary of one discovered collection, or an error wrapping ErrUnknownCollection.
func (c *Comparator) Collection(name string) (CollectionSummary, error) {
	c.mu.RLock()
	rec, ok := c.index[name]
	c.mu.RUnlock()
	if !ok {
		return CollectionSummary{}, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return summarize(rec), nil
}

func summarize(rec domain.CollectionRecord) CollectionSummary {
	present := make(map[domain.EngineKind]bool)
	localOnly := len(rec.Instances) > 0
	for _, p := range rec.Instances {
		present[p.Engine] = true
		if p.Region != domain.LocalRegion {
			localOnly = false
		}
	}
	engines := []domain.EngineKind{}
	for _, k := range domain.EngineKinds {
		if present[k] {
			engines = append(engines, k)
		}
	}
	return CollectionSummary{Name: rec.Name, DocCount: rec.MaxDocCount(), Engines: engines, LocalOnly: localOnly}
}

// Regions returns the selectable regions.
func (c *Comparator) Regions() []string {
	return c.registry.Regions()
}

// Selection returns the current selection.
func (c *Comparator) Selection() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection
}

// Snapshot returns the newest published snapshot.
func (c *Comparator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Discovered reports whether at least one discovery pass has finished.
func (c *Comparator) Discovered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.discovered
}

// Close cancels a running Apply and releases every cached client.
func (c *Comparator) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	return c.cache.Close()
}
