package domain

import (
	"strconv"
	"strings"
)

// Registry is the static instance and slot configuration. Slots and Instances keep their
// configured order; that order breaks ties during slot resolution.
type Registry struct {
	Instances []BackendInstance
	Slots     []ServiceSlot
}

// Enabled returns the enabled instances in registry order.
func (r Registry) Enabled() []BackendInstance {
	out := make([]BackendInstance, 0, len(r.Instances))
	for _, inst := range r.Instances {
		if inst.Enabled {
			out = append(out, inst)
		}
	}
	return out
}

// Instance returns the instance with the given id.
func (r Registry) Instance(id string) (BackendInstance, bool) {
	for _, inst := range r.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return BackendInstance{}, false
}

// Regions returns the distinct regions of enabled non-local instances in registry order.
func (r Registry) Regions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, inst := range r.Instances {
		if !inst.Enabled || inst.IsLocal() || seen[inst.Region] {
			continue
		}
		seen[inst.Region] = true
		out = append(out, inst.Region)
	}
	return out
}

// ValidateRegistry checks ids are unique and non-empty, engines are known, enabled instances have an
// address, and local-only slots with a designated instance point at an existing local instance.
//
// Parameter r: registry as built by cmd.LoadConfig.
//
// Returns: nil when valid; *RegistryConfigError for the first problem found.
//
// Called from cmd.LoadConfig.
func ValidateRegistry(r Registry) error {
	ids := make(map[string]bool, len(r.Instances))
	for i, inst := range r.Instances {
		if strings.TrimSpace(inst.ID) == "" {
			return &RegistryConfigError{Section: "instances", Index: i, Reason: "id must be non-empty"}
		}
		if ids[inst.ID] {
			return &RegistryConfigError{Section: "instances", Index: i, Reason: "duplicate id " + inst.ID}
		}
		ids[inst.ID] = true
		if !inst.Engine.Valid() {
			return &RegistryConfigError{Section: "instances", Index: i, Reason: "unknown engine " + string(inst.Engine)}
		}
		if inst.Enabled && strings.TrimSpace(inst.Address) == "" {
			return &RegistryConfigError{Section: "instances", Index: i, Reason: "address is required for enabled instance"}
		}
		if strings.TrimSpace(inst.Region) == "" {
			return &RegistryConfigError{Section: "instances", Index: i, Reason: "region must be non-empty"}
		}
	}
	slotIDs := make(map[string]bool, len(r.Slots))
	for i, slot := range r.Slots {
		if strings.TrimSpace(slot.SlotID) == "" {
			return &RegistryConfigError{Section: "slots", Index: i, Reason: "slot_id must be non-empty"}
		}
		if slotIDs[slot.SlotID] {
			return &RegistryConfigError{Section: "slots", Index: i, Reason: "duplicate slot_id " + slot.SlotID}
		}
		slotIDs[slot.SlotID] = true
		if !slot.Engine.Valid() {
			return &RegistryConfigError{Section: "slots", Index: i, Reason: "unknown engine " + string(slot.Engine)}
		}
		if slot.LocalInstanceID == "" {
			continue
		}
		inst, ok := r.Instance(slot.LocalInstanceID)
		if !ok {
			return &RegistryConfigError{Section: "slots", Index: i, Reason: "unknown local instance " + slot.LocalInstanceID}
		}
		if !slot.LocalOnly || !inst.IsLocal() || inst.Engine != slot.Engine {
			return &RegistryConfigError{Section: "slots", Index: i, Reason: "local_instance must be a local instance of the slot engine on a local_only slot"}
		}
	}
	return nil
}

// RegistryConfigError is returned by ValidateRegistry. Section is "instances" or "slots",
// Index the 0-based entry within it.
type RegistryConfigError struct {
	Section string
	Index   int
	Reason  string
}

// Error returns e.g. "instances[2]: duplicate id ts-usw1".
func (e *RegistryConfigError) Error() string {
	return e.Section + "[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
