package geometry

// Physical constants of the weak-field model.
const (
	speedOfLight = 299792458.0
	gravConstant = 6.6743e-11

	// densityFloor guards the potential and flux normalization against
	// division by a near-zero density.
	densityFloor = 1e-6

	// SingularityThreshold is the scalar-curvature magnitude above which
	// DetectSingularities reports a singularity.
	SingularityThreshold = 0.95

	// metricTimeDrift scales the modeled temporal derivative of g_00
	// with its deviation from the flat background.
	metricTimeDrift = 0.01
)
