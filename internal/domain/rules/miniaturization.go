package rules

// MiniaturizationFactor is the fraction knocked off a tech's cost for a player
// at level. It grows by MiniaturizationPerLevel for every level above the
// tech's requirements, capped at MiniaturizationMax.
func (r *Rules) MiniaturizationFactor(req, level TechLevel) float64 {
	above := level.LevelsAbove(req)
	return min(r.MiniaturizationMax, r.MiniaturizationPerLevel*float64(above))
}

// MiniaturizedCost applies miniaturization to a tech's cost. Each component
// rounds up, so nothing ever becomes free unless it started free.
func (r *Rules) MiniaturizedCost(t *Tech, level TechLevel) Cost {
	return t.Cost.Scale(1 - r.MiniaturizationFactor(t.Requirements, level))
}
