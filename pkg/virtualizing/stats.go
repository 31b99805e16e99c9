package virtualizing

// Stats counts the work a panel has done since it was created.
type Stats struct {
	// Reconciliations counts reconciliations that recomputed the realized set.
	Reconciliations int `json:"reconciliations" yaml:"reconciliations"`
	// FastPaths counts requests answered from the cached set.
	FastPaths int `json:"fastPaths" yaml:"fastPaths"`
	// Created counts containers obtained from the factory.
	Created int `json:"created" yaml:"created"`
	// Evicted counts containers detached from the child set.
	Evicted int `json:"evicted" yaml:"evicted"`
	// FactoryFailures counts indexes the factory failed to realize.
	FactoryFailures int `json:"factoryFailures" yaml:"factoryFailures"`
	// Measures and Arranges count layout passes.
	Measures int `json:"measures" yaml:"measures"`
	Arranges int `json:"arranges" yaml:"arranges"`
	// ViewportChanges counts distinct viewport notifications.
	ViewportChanges int `json:"viewportChanges" yaml:"viewportChanges"`
	// Navigations counts resolved navigation requests, found or not.
	Navigations int `json:"navigations" yaml:"navigations"`
}

// Sub returns the difference s - other, for measuring the work of one step.
func (s Stats) Sub(other Stats) Stats {
	return Stats{
		Reconciliations: s.Reconciliations - other.Reconciliations,
		FastPaths:       s.FastPaths - other.FastPaths,
		Created:         s.Created - other.Created,
		Evicted:         s.Evicted - other.Evicted,
		FactoryFailures: s.FactoryFailures - other.FactoryFailures,
		Measures:        s.Measures - other.Measures,
		Arranges:        s.Arranges - other.Arranges,
		ViewportChanges: s.ViewportChanges - other.ViewportChanges,
		Navigations:     s.Navigations - other.Navigations,
	}
}
