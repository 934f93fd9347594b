package utils

const (
	// Relative tolerance used when a projection denominator is compared
	// against its numerator.
	TOL = 1.e-05
	// Tolerance for near parallel line pairs and parameter snapping.
	PARALLELTOL = 1.e-06
	// Relative squared separation allowed for a projected 3D intersection.
	INTERSECT3DTOL = 1.e-06
	// Sentinels for parametric coordinates on degenerate segments.
	DOUBLEMAX = 1.0e+299
	DOUBLEMIN = -1.0e+299
)

type EvalOp uint8

const (
	Equal EvalOp = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

// Eval applies the comparison "a op b".
func (op EvalOp) Eval(a, b float64) bool {
	switch op {
	case Equal:
		return a == b
	case Less:
		return a < b
	case Greater:
		return a > b
	case LessOrEqual:
		return a <= b
	case GreaterOrEqual:
		return a >= b
	}
	return false
}
