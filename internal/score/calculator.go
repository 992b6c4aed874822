package score

import (
	"sort"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// Calculator evaluates the full constraint catalog against a State. The
// evaluation is a pure function of the assignment: Evaluate over any state
// always agrees with the running total maintained through PreviewDelta.
type Calculator struct {
	ctx *timeslot.Context

	lessonRules []lessonRule
	bucketRules []bucketRule
	byDimension [numDimensions][]bucketRule
}

// NewCalculator assembles the constraint catalog against the given
// time-slot context.
func NewCalculator(ctx *timeslot.Context) *Calculator {
	c := &Calculator{
		ctx:         ctx,
		lessonRules: lessonRules(),
	}
	c.bucketRules = append(c.bucketRules, conflictRules()...)
	c.bucketRules = append(c.bucketRules, balanceRules()...)
	c.bucketRules = append(c.bucketRules, gapRules()...)
	for _, rule := range c.bucketRules {
		c.byDimension[rule.dim] = append(c.byDimension[rule.dim], rule)
	}
	return c
}

// Evaluate scores the whole state from scratch.
func (c *Calculator) Evaluate(st *State) Score {
	total := Score{}
	for _, l := range st.Lessons {
		for _, rule := range c.lessonRules {
			total = total.Add(rule.eval(c.ctx, l))
		}
	}
	for _, rule := range c.bucketRules {
		for _, bucket := range st.buckets[rule.dim] {
			total = total.Add(rule.eval(c.ctx, bucket))
		}
	}
	return total
}

// ConstraintScore is one constraint's contribution to the total.
type ConstraintScore struct {
	Name  string `json:"name"`
	Score Score  `json:"score"`
}

// Explain scores the whole state and breaks the total down per constraint,
// omitting constraints with a zero contribution. The breakdown is sorted by
// severity, worst hard impact first.
func (c *Calculator) Explain(st *State) (Score, []ConstraintScore) {
	perRule := map[string]Score{}
	for _, l := range st.Lessons {
		for _, rule := range c.lessonRules {
			perRule[rule.name] = perRule[rule.name].Add(rule.eval(c.ctx, l))
		}
	}
	for _, rule := range c.bucketRules {
		for _, bucket := range st.buckets[rule.dim] {
			perRule[rule.name] = perRule[rule.name].Add(rule.eval(c.ctx, bucket))
		}
	}

	total := Score{}
	breakdown := make([]ConstraintScore, 0, len(perRule))
	for name, s := range perRule {
		total = total.Add(s)
		if s == (Score{}) {
			continue
		}
		breakdown = append(breakdown, ConstraintScore{Name: name, Score: s})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if cmp := breakdown[i].Score.Compare(breakdown[j].Score); cmp != 0 {
			return cmp < 0
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	return total, breakdown
}

// PreviewDelta applies the assignments to the state and returns the exact
// score change, evaluating only the lessons and buckets the change touches.
// The state is left mutated; a caller rejecting the move undoes it by
// applying the inverse assignments through State.Apply.
func (c *Calculator) PreviewDelta(st *State, changes []Assignment) Score {
	touched := c.touchedKeys(changes)

	before := c.evaluateScope(st, changes, touched)
	st.Apply(changes)
	after := c.evaluateScope(st, changes, touched)
	return after.Sub(before)
}

// touchedKeys collects, per dimension, every bucket key a changed lesson
// occupies before or after the move.
func (c *Calculator) touchedKeys(changes []Assignment) [numDimensions]map[string]struct{} {
	var touched [numDimensions]map[string]struct{}
	for d := dimension(0); d < numDimensions; d++ {
		if len(c.byDimension[d]) == 0 {
			continue
		}
		touched[d] = make(map[string]struct{})
		for _, ch := range changes {
			if key, ok := bucketKey(d, ch.Lesson, ch.Lesson.Room, ch.Lesson.Slot); ok {
				touched[d][key] = struct{}{}
			}
			if key, ok := bucketKey(d, ch.Lesson, ch.Room, ch.Slot); ok {
				touched[d][key] = struct{}{}
			}
		}
	}
	return touched
}

func (c *Calculator) evaluateScope(st *State, changes []Assignment, touched [numDimensions]map[string]struct{}) Score {
	total := Score{}
	for _, ch := range changes {
		for _, rule := range c.lessonRules {
			total = total.Add(rule.eval(c.ctx, ch.Lesson))
		}
	}
	for d := dimension(0); d < numDimensions; d++ {
		for key := range touched[d] {
			bucket := st.bucket(d, key)
			if len(bucket) == 0 {
				continue
			}
			for _, rule := range c.byDimension[d] {
				total = total.Add(rule.eval(c.ctx, bucket))
			}
		}
	}
	return total
}

// Unassigned counts lessons still missing a room or slot; handy for
// progress reporting during construction.
func Unassigned(lessons []*domain.Lesson) int {
	n := 0
	for _, l := range lessons {
		if !l.IsAssigned() {
			n++
		}
	}
	return n
}
