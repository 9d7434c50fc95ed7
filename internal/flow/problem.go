package flow

// PlotInfo is descriptive metadata for plotting collaborators: which state
// components form the section axes and how to label them.
type PlotInfo struct {
	Kind   string // axis ordering, "xy" or "yx"
	XIndex int
	YIndex int
	XLabel string
	YLabel string
}

// Problem is the façade every concrete model exposes to integrators and
// analysis consumers. Implementations are immutable with respect to their
// configuration apart from explicit parameter setters, and both RHS entry
// points are stateless: safe to share one Problem across trajectories as
// long as each trajectory owns its extended buffer.
type Problem interface {
	// Size is the dimensionality of the plain state vector.
	Size() int

	// F is the plain vector field dx/dt at (t, x).
	F(t float64, x State) State

	// FTangent is the augmented vector field over an extended buffer of
	// size Size()+Size()². It unpacks the tangent matrix M from the tail,
	// computes the local linearization L analytically, and packs the
	// derivative together with L·M.
	FTangent(t float64, e Extended) Extended

	// ConvertCoords wraps periodic components of (x0, x1, t) into their
	// canonical range, leaving radial/time-like components untouched.
	// It is idempotent.
	ConvertCoords(coords State) State

	// Plot describes the section axes for visualization.
	Plot() PlotInfo
}

// Configurable is implemented by problems with runtime-adjustable scalar
// parameters; changes take effect on all subsequent RHS evaluations.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
