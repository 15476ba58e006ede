package domain

// HealthCheck is one diagnostic performed by the doctor command.
type HealthCheck struct {
	Name    string
	OK      bool
	Detail  string
	Advice  string
}

// HealthReport aggregates all doctor checks.
type HealthReport struct {
	Checks []HealthCheck
}

// Healthy reports whether every check passed.
func (r HealthReport) Healthy() bool {
	for _, check := range r.Checks {
		if !check.OK {
			return false
		}
	}
	return true
}
