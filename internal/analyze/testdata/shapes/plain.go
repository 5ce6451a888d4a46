package shapes

// Plain holds no directive.
type Plain struct{ N int }
