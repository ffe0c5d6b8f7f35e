package clifford4d

type Real = float64

// Channel indices for readability.
const (
	ChR = 0
	ChG = 1
	ChB = 2
	// PoleEpsilon bounds |r - w| from below so points near the projection pole
	// land at a large but finite distance instead of blowing up.
	PoleEpsilon = 0.01
)
