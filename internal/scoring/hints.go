package scoring

// Tier labels a 0-100 score for display.
func Tier(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "low"
	}
}

// AgeFactor describes the age band. Absent age is "Challenging".
func AgeFactor(age *int) string {
	switch {
	case age != nil && *age >= 25 && *age <= 45:
		return "Optimal"
	case age != nil && *age >= 18 && *age <= 55:
		return "Suitable"
	default:
		return "Challenging"
	}
}
