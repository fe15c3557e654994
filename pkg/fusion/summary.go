package fusion

// FiberSummary is the diagnostic view of one fiber after fusion.
type FiberSummary struct {
	Center [2]float64 `json:"center"`
	Radius float64    `json:"radius"`
	Core   [2]float64 `json:"core"`
}

// ConnectionSummary is the diagnostic view of one pair connection.
type ConnectionSummary struct {
	Topology    string  `json:"topology"`
	Shift       float64 `json:"shift"`
	AddedArea   float64 `json:"addedArea"`
	RemovedArea float64 `json:"removedArea"`
}

// Summary is the JSON-serializable diagnostic report of a built
// assembly, consumed by downstream rasterization and plotting code.
type Summary struct {
	Fibers       []FiberSummary      `json:"fibers"`
	Connections  []ConnectionSummary `json:"connections"`
	Shift        float64             `json:"shift"`
	Topology     string              `json:"topology"`
	FusedArea    float64             `json:"fusedArea"`
	AreaResidual float64             `json:"areaResidual"`
}

// Summarize builds the summary for this connection at its current
// configuration.
func (pc *PairConnection) Summarize() ConnectionSummary {
	return ConnectionSummary{
		Topology:    pc.topology.String(),
		Shift:       pc.shift,
		AddedArea:   pc.added.Area(),
		RemovedArea: pc.RemovedArea(),
	}
}

// Summary reports the state computed by the last Build.
func (a *Assembly) Summary() Summary {
	s := Summary{
		Shift:        a.shift,
		Topology:     a.topology.String(),
		FusedArea:    a.fused.Area(),
		AreaResidual: a.shiftCost,
	}
	for _, f := range a.fibers {
		s.Fibers = append(s.Fibers, FiberSummary{
			Center: [2]float64{f.Center.X, f.Center.Y},
			Radius: f.Radius,
			Core:   [2]float64{f.Core.X, f.Core.Y},
		})
	}
	for _, c := range a.connections {
		s.Connections = append(s.Connections, c.Summarize())
	}
	return s
}
