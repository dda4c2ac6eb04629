package scoring

// Axis names one of the four evaluation sub-scores.
type Axis string

const (
	AxisPhysical      Axis = "physical"
	AxisMental        Axis = "mental"
	AxisSkills        Axis = "skills"
	AxisCompatibility Axis = "compatibility"
)

// Axes lists the axes in reporting order.
var Axes = []Axis{AxisPhysical, AxisMental, AxisSkills, AxisCompatibility}

// Status is the admission decision.
type Status string

const (
	StatusSelected    Status = "Selected"
	StatusNotSelected Status = "Not Selected"
)

const (
	// SelectionThreshold is the lowest overall score that is Selected.
	SelectionThreshold = 60

	maxAxisScore = 100
)

type Breakdown struct {
	Physical      int `json:"physical" yaml:"physical"`
	Mental        int `json:"mental" yaml:"mental"`
	Skills        int `json:"skills" yaml:"skills"`
	Compatibility int `json:"compatibility" yaml:"compatibility"`
}

// Get returns the score of a single axis.
func (b Breakdown) Get(axis Axis) int {
	switch axis {
	case AxisPhysical:
		return b.Physical
	case AxisMental:
		return b.Mental
	case AxisSkills:
		return b.Skills
	case AxisCompatibility:
		return b.Compatibility
	default:
		return 0
	}
}

func (b Breakdown) sum() int {
	return b.Physical + b.Mental + b.Skills + b.Compatibility
}

// Assessment is the immutable outcome of evaluating one candidate record.
type Assessment struct {
	Breakdown     Breakdown `json:"breakdown" yaml:"breakdown"`
	OverallScore  int       `json:"overallScore" yaml:"overallScore"`
	Status        Status    `json:"status" yaml:"status"`
	SuggestedRole string    `json:"suggestedRole" yaml:"suggestedRole"`
}

func (a Assessment) Selected() bool {
	return a.Status == StatusSelected
}

// Award records points one rule added to an axis before clamping.
type Award struct {
	Axis   Axis   `json:"axis" yaml:"axis"`
	Rule   string `json:"rule" yaml:"rule"`
	Points int    `json:"points" yaml:"points"`
}
