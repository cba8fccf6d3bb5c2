package domain

import (
	"sort"
	"strings"
)

// CollectionInfo is the normalized listing entry every engine adapter produces.
type CollectionInfo struct {
	Name     string
	DocCount int64
	Fields   []string
}

// InstancePresence is what one instance reported about one collection.
type InstancePresence struct {
	DocCount int64
	Fields   []string
	Engine   EngineKind
	Region   string
}

// CollectionRecord aggregates one collection's presence across instances, keyed by instance id.
// Entries from different instances are never reconciled.
type CollectionRecord struct {
	Name      string
	Instances map[string]InstancePresence
}

// MaxDocCount returns the largest doc count reported by any instance.
func (r CollectionRecord) MaxDocCount() int64 {
	var max int64
	for _, p := range r.Instances {
		if p.DocCount > max {
			max = p.DocCount
		}
	}
	return max
}

// CollectionIndex maps collection name to record. A discovery pass builds a new index and
// replaces the previous one wholesale.
type CollectionIndex map[string]CollectionRecord

// Add merges one instance's listing entry into the index under that instance's id.
func (idx CollectionIndex) Add(inst BackendInstance, info CollectionInfo) {
	rec, ok := idx[info.Name]
	if !ok {
		rec = CollectionRecord{Name: info.Name, Instances: make(map[string]InstancePresence)}
	}
	rec.Instances[inst.ID] = InstancePresence{
		DocCount: info.DocCount,
		Fields:   info.Fields,
		Engine:   inst.Engine,
		Region:   inst.Region,
	}
	idx[info.Name] = rec
}

// Presence returns the entry for instanceID within collection, if any.
func (idx CollectionIndex) Presence(collection, instanceID string) (InstancePresence, bool) {
	rec, ok := idx[collection]
	if !ok {
		return InstancePresence{}, false
	}
	p, ok := rec.Instances[instanceID]
	return p, ok
}

// Names returns the collection names in ascending order.
func (idx CollectionIndex) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCollection picks the first sorted name not prefixed with TestCollectionPrefix,
// falling back to the first name. Returns "" for an empty index.
func (idx CollectionIndex) DefaultCollection() string {
	names := idx.Names()
	for _, name := range names {
		if !strings.HasPrefix(name, TestCollectionPrefix) {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}
