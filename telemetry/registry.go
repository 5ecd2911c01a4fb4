package telemetry

// PhaseInfo describes a tick phase for display.
type PhaseInfo struct {
	ID          string // Phase name used by PerfCollector
	Name        string // Display name
	Description string
}

// PhaseRegistry holds metadata about tick phases so the perf panel and the
// collector agree on naming.
type PhaseRegistry struct {
	phases []PhaseInfo
	byID   map[string]PhaseInfo
}

// NewPhaseRegistry creates a registry with every scene phase.
func NewPhaseRegistry() *PhaseRegistry {
	r := &PhaseRegistry{byID: make(map[string]PhaseInfo)}
	r.Register(PhaseInfo{ID: PhaseIngest, Name: "Ingest", Description: "Applies fetched market data"})
	r.Register(PhaseInfo{ID: PhaseLayout, Name: "Layout", Description: "Spring and repulsion integration"})
	r.Register(PhaseInfo{ID: PhaseCamera, Name: "Camera", Description: "Hover release and follow"})
	r.Register(PhaseInfo{ID: PhaseAppearance, Name: "Appearance", Description: "Scale, glow and opacity easing"})
	r.Register(PhaseInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Frame sampling"})
	return r
}

// Register adds a phase.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.phases = append(r.phases, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *PhaseRegistry) Get(id string) (PhaseInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase, or the ID if unknown.
func (r *PhaseRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all phases in registration order.
func (r *PhaseRegistry) All() []PhaseInfo {
	return r.phases
}
