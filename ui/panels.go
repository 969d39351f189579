package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelID uniquely identifies a toggleable panel.
type PanelID string

// Standard panel IDs.
const (
	PanelHUD       PanelID = "hud"
	PanelTuning    PanelID = "tuning"
	PanelPerf      PanelID = "perf"
	PanelInspector PanelID = "inspector"
	PanelHelp      PanelID = "help"
)

// PanelDescriptor defines a panel that can be toggled.
type PanelDescriptor struct {
	ID       PanelID
	Name     string
	Key      int32 // keyboard key to toggle (0 = no key)
	KeyLabel string
	Default  bool // shown at startup
}

// PanelRegistry manages panel visibility and metadata.
type PanelRegistry struct {
	descriptors []PanelDescriptor
	byID        map[PanelID]PanelDescriptor
	enabled     map[PanelID]bool
}

// NewPanelRegistry creates a registry with the default panels.
func NewPanelRegistry() *PanelRegistry {
	reg := &PanelRegistry{
		byID:    make(map[PanelID]PanelDescriptor),
		enabled: make(map[PanelID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *PanelRegistry) registerDefaults() {
	r.Register(PanelDescriptor{ID: PanelHUD, Name: "HUD", Key: rl.KeyH, KeyLabel: "H", Default: true})
	r.Register(PanelDescriptor{ID: PanelTuning, Name: "Tuning", Key: rl.KeyT, KeyLabel: "T", Default: true})
	r.Register(PanelDescriptor{ID: PanelPerf, Name: "Performance", Key: rl.KeyP, KeyLabel: "P"})
	r.Register(PanelDescriptor{ID: PanelInspector, Name: "Cell Inspector", Key: rl.KeyI, KeyLabel: "I"})
	r.Register(PanelDescriptor{ID: PanelHelp, Name: "Controls", Key: rl.KeyF1, KeyLabel: "F1"})
}

// Register adds a panel to the registry.
func (r *PanelRegistry) Register(desc PanelDescriptor) {
	if _, ok := r.byID[desc.ID]; !ok {
		r.descriptors = append(r.descriptors, desc)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches a panel on or off and returns the new state.
func (r *PanelRegistry) Toggle(id PanelID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether a panel is shown.
func (r *PanelRegistry) IsEnabled(id PanelID) bool {
	return r.enabled[id]
}

// All returns all registered panels in registration order.
func (r *PanelRegistry) All() []PanelDescriptor {
	return r.descriptors
}

// HandleKeys toggles every panel whose key was pressed this frame.
func (r *PanelRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
