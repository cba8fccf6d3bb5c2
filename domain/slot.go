package domain

import "fmt"

// Block reasons attached to a ResolvedSlot when it cannot serve queries.
const (
	ReasonLocalNotConfigured = "local server not configured"
	ReasonNoCollection       = "no collection"
	ReasonMixedContent       = "secure page cannot reach insecure server (pending upgrade)"
	ReasonSortUnsupported    = "sort N/A"
)

// ReasonNoEngineInRegion formats the block reason for a regional slot without candidates.
func ReasonNoEngineInRegion(engine EngineKind, region string) string {
	return fmt.Sprintf("no %s in %s", engine, region)
}

// ServiceSlot is one fixed comparison column. LocalOnly slots are shown only in dev mode and
// bind to LocalInstanceID when set, else to the first enabled local instance of Engine.
type ServiceSlot struct {
	SlotID          string
	Engine          EngineKind
	Label           string
	LocalOnly       bool
	LocalInstanceID string
}

// ResolvedSlot is a slot after resolution. Instance == nil implies BlockReason != "";
// an active slot has an Instance and an empty BlockReason.
type ResolvedSlot struct {
	SlotID      string
	Engine      EngineKind
	Label       string
	Instance    *BackendInstance
	BlockReason string
}

// Active reports whether the slot has a live instance and no block reason.
func (s ResolvedSlot) Active() bool {
	return s.Instance != nil && s.BlockReason == ""
}

// InstanceID returns the attached instance id or "" when none is attached.
func (s ResolvedSlot) InstanceID() string {
	if s.Instance == nil {
		return ""
	}
	return s.Instance.ID
}
