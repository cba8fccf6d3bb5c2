package service

import (
	"sort"

	"mycomparer/domain"
	"mycomparer/helpers"
)

// ResolveSlots maps every slot to a concrete instance or a block reason. Pure and deterministic:
// identical inputs give identical output, and nothing is read besides the arguments.
//
// Parameters: slots: configured slots, output keeps their order; instances: registry in configured
// order (breaks doc-count ties); index: current collection index; collection, region: user selection;
// devMode: local-only slots are dropped from the output when false; pageSecure: page served over https.
//
// Rules per regional slot: candidates are enabled instances of the slot engine in region. No candidate
// blocks with "no <engine> in <region>". An unknown collection attaches the first candidate with
// "no collection". Otherwise the candidate with the highest nonzero doc count wins (first listed on a
// tie); if that instance is unreachable from a secure page it stays attached but blocked, and no other
// candidate is tried. Without nonzero counts the first candidate is attached with "no collection".
//
// Returns: resolved slots, each with a fresh copy of its instance.
//
// Called from Comparator.Apply on every selection change and after discovery.
func ResolveSlots(
	slots []domain.ServiceSlot,
	instances []domain.BackendInstance,
	index domain.CollectionIndex,
	collection, region string,
	devMode, pageSecure bool,
) []domain.ResolvedSlot {
	out := make([]domain.ResolvedSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.LocalOnly {
			if !devMode {
				continue
			}
			out = append(out, resolveLocalSlot(slot, instances, index, collection))
			continue
		}
		out = append(out, resolveRegionalSlot(slot, instances, index, collection, region, pageSecure))
	}
	return out
}

func resolveLocalSlot(slot domain.ServiceSlot, instances []domain.BackendInstance, index domain.CollectionIndex, collection string) domain.ResolvedSlot {
	res := newResolved(slot)
	inst, ok := findLocalInstance(slot, instances)
	if !ok {
		res.BlockReason = domain.ReasonLocalNotConfigured
		return res
	}
	res.Instance = &inst
	if _, present := index.Presence(collection, inst.ID); !present {
		res.BlockReason = domain.ReasonNoCollection
	}
	return res
}

// findLocalInstance returns the designated local instance of the slot, or the first enabled local
// instance of the slot engine when none is designated.
func findLocalInstance(slot domain.ServiceSlot, instances []domain.BackendInstance) (domain.BackendInstance, bool) {
	for _, inst := range instances {
		if !inst.Enabled || !inst.IsLocal() || inst.Engine != slot.Engine {
			continue
		}
		if slot.LocalInstanceID == "" || slot.LocalInstanceID == inst.ID {
			return inst, true
		}
	}
	return domain.BackendInstance{}, false
}

func resolveRegionalSlot(
	slot domain.ServiceSlot,
	instances []domain.BackendInstance,
	index domain.CollectionIndex,
	collection, region string,
	pageSecure bool,
) domain.ResolvedSlot {
	res := newResolved(slot)
	var candidates []domain.BackendInstance
	for _, inst := range instances {
		if inst.Enabled && inst.Engine == slot.Engine && inst.Region == region {
			candidates = append(candidates, inst)
		}
	}
	if len(candidates) == 0 {
		res.BlockReason = domain.ReasonNoEngineInRegion(slot.Engine, region)
		return res
	}

	rec, known := index[collection]
	if !known {
		first := candidates[0]
		res.Instance = &first
		res.BlockReason = domain.ReasonNoCollection
		return res
	}

	var withData []domain.BackendInstance
	for _, c := range candidates {
		if p, ok := rec.Instances[c.ID]; ok && p.DocCount > 0 {
			withData = append(withData, c)
		}
	}
	if len(withData) == 0 {
		first := candidates[0]
		res.Instance = &first
		res.BlockReason = domain.ReasonNoCollection
		return res
	}

	sort.SliceStable(withData, func(i, j int) bool {
		return rec.Instances[withData[i].ID].DocCount > rec.Instances[withData[j].ID].DocCount
	})
	best := withData[0]
	res.Instance = &best
	if IsMixedContent(best, pageSecure) {
		res.BlockReason = domain.ReasonMixedContent
	}
	return res
}

func newResolved(slot domain.ServiceSlot) domain.ResolvedSlot {
	return domain.ResolvedSlot{SlotID: slot.SlotID, Engine: slot.Engine, Label: slot.Label}
}

// IsMixedContent reports whether a secure page would be blocked from reaching inst: the address uses
// plain http and is not a loopback address.
func IsMixedContent(inst domain.BackendInstance, pageSecure bool) bool {
	if !pageSecure {
		return false
	}
	return helpers.IsInsecureAddress(inst.Address) && !inst.IsLoopback()
}
