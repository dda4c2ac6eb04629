// Package scoring turns a completed candidate record into an assessment.
//
// The engine is a pure function: it holds no state, performs no I/O and never
// fails. Absent fields contribute nothing to the rules that read them, so any
// well-typed record, including an empty one, yields a valid assessment. It is
// safe to call from multiple goroutines.
package scoring

import (
	"math"

	"github.com/spigell/mars-eval/internal/candidate"
)

// Evaluate scores the candidate record.
func Evaluate(c *candidate.Record) Assessment {
	assessment, _ := Trace(c)
	return assessment
}

// Trace scores the candidate record and returns, in evaluation order, every
// award that contributed points before clamping.
func Trace(c *candidate.Record) (Assessment, []Award) {
	if c == nil {
		c = &candidate.Record{}
	}

	raw := make(map[Axis]int, len(Axes))
	awards := make([]Award, 0, len(scoreGroups)+1)

	for _, g := range scoreGroups {
		r, ok := g.match(c)
		if !ok {
			continue
		}
		raw[g.axis] += r.points
		awards = append(awards, Award{Axis: g.axis, Rule: r.name, Points: r.points})
	}

	if n := c.DistinctSkills(); n > 0 {
		raw[AxisSkills] = n * pointsPerSkill
		awards = append(awards, Award{Axis: AxisSkills, Rule: "skills", Points: raw[AxisSkills]})
	}

	breakdown := Breakdown{
		Physical:      clamp(raw[AxisPhysical]),
		Mental:        clamp(raw[AxisMental]),
		Skills:        clamp(raw[AxisSkills]),
		Compatibility: clamp(raw[AxisCompatibility]),
	}

	overall := overallScore(breakdown)

	return Assessment{
		Breakdown:     breakdown,
		OverallScore:  overall,
		Status:        statusFor(overall),
		SuggestedRole: SuggestRole(c, overall),
	}, awards
}

// overallScore is the mean of the clamped axes, ties rounded away from zero.
func overallScore(b Breakdown) int {
	return int(math.Round(float64(b.sum()) / float64(len(Axes))))
}

func statusFor(overall int) Status {
	if overall >= SelectionThreshold {
		return StatusSelected
	}
	return StatusNotSelected
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxAxisScore {
		return maxAxisScore
	}
	return v
}
