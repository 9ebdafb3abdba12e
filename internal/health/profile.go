package health

// Profile is the user profile the hydration target derives from.
type Profile struct {
	WeightKg float64
	Activity ActivityLevel
}

// Target computes the daily hydration target for this profile.
func (p Profile) Target() (int, error) {
	return ComputeTarget(p.WeightKg, p.Activity)
}
