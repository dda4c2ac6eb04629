package candidate

// Question is a psychological question with its closed option set.
type Question struct {
	ID      string
	Text    string
	Options []string
}

// Skill catalog offered by the questionnaire.
const (
	SkillMedical     = "Medical/Healthcare"
	SkillProgramming = "Programming/Software Development"
	SkillAgriculture = "Agriculture/Farming"
)

var Skills = []string{
	SkillMedical,
	SkillProgramming,
	"Mechanical Engineering",
	SkillAgriculture,
	"Electronics/Hardware",
	"Geology/Mining",
	"Construction/Architecture",
	"Research/Science",
	"Communications",
	"Leadership/Management",
	"Cooking/Food Preparation",
	"Renewable Energy",
	"Water Management",
	"Emergency Response",
	"Teaching/Training",
}

var PsychologicalQuestions = []Question{
	{
		ID:   QuestionIsolation,
		Text: "How would you handle being isolated from Earth for 2+ years?",
		Options: []string{
			"I thrive in isolated environments and find solace in solitude",
			"I can adapt but would need regular communication with Earth",
			"I would struggle but could manage with strong team support",
			"Isolation severely affects my mental health",
		},
	},
	{
		ID:   QuestionLeadership,
		Text: "In a crisis situation on Mars, your preferred approach would be:",
		Options: []string{
			"Take immediate charge and make decisive decisions",
			"Collaborate with the team to find the best solution",
			"Support the designated leader while offering expertise",
			"Follow orders precisely to avoid making mistakes",
		},
	},
	{
		ID:   QuestionSacrifice,
		Text: "If the mission success required personal sacrifice, you would:",
		Options: []string{
			"Volunteer immediately for the good of the mission",
			"Carefully weigh options before deciding",
			"Accept if chosen but not volunteer",
			"Prioritize personal safety over mission goals",
		},
	},
	{
		ID:   QuestionFailure,
		Text: "Your reaction to a critical system failure would be:",
		Options: []string{
			"Stay calm and methodically troubleshoot",
			"Rally the team while working on solutions",
			"Follow emergency protocols precisely",
			"Experience significant stress but continue working",
		},
	},
	{
		ID:   QuestionResources,
		Text: "With limited resources, you would prioritize:",
		Options: []string{
			"Mission objectives above all else",
			"Balanced approach between mission and crew welfare",
			"Crew safety and well-being first",
			"Personal needs to maintain effectiveness",
		},
	},
}

// Closed option sets of the enumerated fields.
var (
	SexOptions       = []string{"Male", "Female", "Other"}
	BloodTypeOptions = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	GeneralHealthOptions = []string{"Excellent", "Good", "Fair", "Poor"}

	ExerciseOptions = []string{
		"Daily intense training",
		"Regular exercise (3-5x/week)",
		"Moderate activity",
		"Minimal exercise",
		"Sedentary lifestyle",
	}

	DietOptions = []string{
		"Balanced/Omnivore",
		"Vegetarian",
		"Vegan",
		"Keto/Low-carb",
		"Paleo",
		"Mediterranean",
		"Other specialized",
	}

	AddictionOptions = []string{
		"None",
		"Caffeine only",
		"Social drinking",
		"Regular drinking",
		"Tobacco use",
		"Prescription medications",
		"Multiple substances",
	}
)

// FindQuestion returns the catalog question with the given id.
func FindQuestion(id string) (Question, bool) {
	for _, q := range PsychologicalQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
