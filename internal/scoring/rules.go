package scoring

import (
	"strings"

	"github.com/spigell/mars-eval/internal/candidate"
)

const pointsPerSkill = 7

var highValueProfessions = []string{"Engineer", "Doctor", "Scientist", "Researcher", "Pilot"}

type predicate func(c *candidate.Record) bool

type rule struct {
	name   string
	when   predicate
	points int
}

// group is a first-match-wins chain of rules contributing to one axis.
type group struct {
	axis  Axis
	rules []rule
}

func (g group) match(c *candidate.Record) (rule, bool) {
	for _, r := range g.rules {
		if r.when(c) {
			return r, true
		}
	}
	return rule{}, false
}

// scoreGroups is evaluated in order. Groups are independent of each other.
var scoreGroups = []group{
	// The default age branch fires even when age is absent. Kept as is.
	{axis: AxisPhysical, rules: []rule{
		{name: "age 25-45", when: ageWithin(25, 45), points: 25},
		{name: "age 18-55", when: ageWithin(18, 55), points: 15},
		{name: "age default", when: always, points: 5},
	}},
	{axis: AxisPhysical, rules: []rule{
		{name: "health excellent", when: healthIs("Excellent"), points: 25},
		{name: "health good", when: healthIs("Good"), points: 15},
		{name: "health fair", when: healthIs("Fair"), points: 5},
	}},
	{axis: AxisPhysical, rules: []rule{
		{name: "exercise daily intense", when: exerciseIs("Daily intense training"), points: 25},
		{name: "exercise regular", when: exerciseIs("Regular exercise (3-5x/week)"), points: 20},
		{name: "exercise moderate", when: exerciseIs("Moderate activity"), points: 10},
	}},
	{axis: AxisPhysical, rules: []rule{
		{name: "no addictions", when: addictionsIs("None"), points: 25},
	}},

	{axis: AxisMental, rules: []rule{
		{name: "isolation thrive", when: responseContains(candidate.QuestionIsolation, "thrive"), points: 25},
		{name: "isolation adapt", when: responseContains(candidate.QuestionIsolation, "adapt"), points: 15},
	}},
	{axis: AxisMental, rules: []rule{
		{name: "leadership take charge", when: responseContains(candidate.QuestionLeadership, "Take immediate charge"), points: 20},
		{name: "leadership collaborate", when: responseContains(candidate.QuestionLeadership, "Collaborate"), points: 25},
	}},
	{axis: AxisMental, rules: []rule{
		{name: "sacrifice volunteer", when: responseContains(candidate.QuestionSacrifice, "Volunteer immediately"), points: 25},
		{name: "sacrifice weigh options", when: responseContains(candidate.QuestionSacrifice, "weigh options"), points: 15},
	}},
	{axis: AxisMental, rules: []rule{
		{name: "failure stay calm", when: responseContains(candidate.QuestionFailure, "Stay calm"), points: 25},
		{name: "failure rally team", when: responseContains(candidate.QuestionFailure, "Rally the team"), points: 20},
	}},
	{axis: AxisMental, rules: []rule{
		{name: "resources balanced", when: responseContains(candidate.QuestionResources, "Balanced approach"), points: 25},
		{name: "resources mission first", when: responseContains(candidate.QuestionResources, "Mission objectives"), points: 20},
	}},

	{axis: AxisCompatibility, rules: []rule{
		{name: "sleep 7-9h", when: sleepWithin(7, 9), points: 25},
	}},
	{axis: AxisCompatibility, rules: []rule{
		{name: "diet balanced", when: dietIs("Balanced/Omnivore"), points: 20},
		{name: "diet vegetarian", when: dietIs("Vegetarian"), points: 15},
		{name: "diet vegan", when: dietIs("Vegan"), points: 10},
	}},
	{axis: AxisCompatibility, rules: []rule{
		{name: "high-value profession", when: professionMatchesAny(highValueProfessions), points: 25},
	}},
}

func always(*candidate.Record) bool { return true }

func ageWithin(low, high int) predicate {
	return func(c *candidate.Record) bool {
		return c.Age != nil && *c.Age >= low && *c.Age <= high
	}
}

func sleepWithin(low, high float64) predicate {
	return func(c *candidate.Record) bool {
		return c.SleepHours != nil && *c.SleepHours >= low && *c.SleepHours <= high
	}
}

func healthIs(v string) predicate {
	return func(c *candidate.Record) bool { return c.GeneralHealth == v }
}

func exerciseIs(v string) predicate {
	return func(c *candidate.Record) bool { return c.ExerciseHabits == v }
}

func addictionsIs(v string) predicate {
	return func(c *candidate.Record) bool { return c.Addictions == v }
}

func dietIs(v string) predicate {
	return func(c *candidate.Record) bool { return c.DietType == v }
}

// responseContains matches a substring of the stored answer, not the whole option.
func responseContains(questionID, fragment string) predicate {
	return func(c *candidate.Record) bool {
		answer, ok := c.Response(questionID)
		return ok && strings.Contains(answer, fragment)
	}
}

func professionMatchesAny(professions []string) predicate {
	return func(c *candidate.Record) bool {
		profession := strings.ToLower(c.Profession)
		for _, p := range professions {
			if strings.Contains(profession, strings.ToLower(p)) {
				return true
			}
		}
		return false
	}
}
