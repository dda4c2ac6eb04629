package candidate

// Question identifiers used as keys of Record.PsychologicalResponses.
const (
	QuestionIsolation  = "isolation"
	QuestionLeadership = "leadership"
	QuestionSacrifice  = "sacrifice"
	QuestionFailure    = "failure"
	QuestionResources  = "resources"
)

// Record holds the questionnaire answers of one candidate.
// Optional numbers are nil when the candidate did not supply them.
type Record struct {
	ID string `mapstructure:"id" json:"id,omitempty" yaml:"id,omitempty"`

	// Identification.
	FullName       string `mapstructure:"fullName" json:"fullName" yaml:"fullName"`
	Country        string `mapstructure:"country" json:"country" yaml:"country"`
	NativeLanguage string `mapstructure:"nativeLanguage" json:"nativeLanguage" yaml:"nativeLanguage"`
	Profession     string `mapstructure:"profession" json:"profession" yaml:"profession"`

	// Physical data.
	Age           *int   `mapstructure:"age" json:"age" yaml:"age"`
	Sex           string `mapstructure:"sex" json:"sex" yaml:"sex"`
	Height        *int   `mapstructure:"height" json:"height,omitempty" yaml:"height,omitempty"`
	Weight        *int   `mapstructure:"weight" json:"weight,omitempty" yaml:"weight,omitempty"`
	BloodType     string `mapstructure:"bloodType" json:"bloodType" yaml:"bloodType"`
	GeneralHealth string `mapstructure:"generalHealth" json:"generalHealth" yaml:"generalHealth"`

	// Lifestyle.
	ExerciseHabits string   `mapstructure:"exerciseHabits" json:"exerciseHabits" yaml:"exerciseHabits"`
	DietType       string   `mapstructure:"dietType" json:"dietType" yaml:"dietType"`
	SleepHours     *float64 `mapstructure:"sleepHours" json:"sleepHours" yaml:"sleepHours"`
	Addictions     string   `mapstructure:"addictions" json:"addictions" yaml:"addictions"`

	Skills []string `mapstructure:"skills" json:"skills" yaml:"skills"`

	// PsychologicalResponses maps a question id to the chosen option text.
	// Unanswered questions are absent.
	PsychologicalResponses map[string]string `mapstructure:"psychologicalResponses" json:"psychologicalResponses" yaml:"psychologicalResponses"`
}

// HasSkill reports whether the exact skill is in the record's skill set.
func (r *Record) HasSkill(skill string) bool {
	if r == nil {
		return false
	}
	for _, s := range r.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// DistinctSkills returns the number of distinct non-empty skills.
func (r *Record) DistinctSkills() int {
	if r == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(r.Skills))
	for _, s := range r.Skills {
		if s == "" {
			continue
		}
		seen[s] = struct{}{}
	}
	return len(seen)
}

// Response returns the stored answer for a psychological question.
func (r *Record) Response(questionID string) (string, bool) {
	if r == nil || r.PsychologicalResponses == nil {
		return "", false
	}
	answer, ok := r.PsychologicalResponses[questionID]
	return answer, ok
}

// DisplayName returns the best human label for the record.
func (r *Record) DisplayName() string {
	if r == nil {
		return ""
	}
	if r.FullName != "" {
		return r.FullName
	}
	return r.ID
}
