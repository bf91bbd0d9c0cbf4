// Package studyplan produces canned study plans for free-text topics.
package studyplan

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
)

type rule struct {
	keywords []string
	plan     *model.StudyPlan
}

// Rules are checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{keywords: []string{"peru", "inca"}, plan: &peruPlan},
	{keywords: []string{"arquitectura", "romana"}, plan: &romanPlan},
}

// Lookup returns the plan whose keywords occur in the lower-cased topic, or the default plan.
func Lookup(topic string) model.StudyPlan {
	lower := strings.ToLower(topic)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return *r.plan
			}
		}
	}
	return defaultPlan
}

// Generator returns plans after an artificial delay.
type Generator struct {
	Delay time.Duration
}

// Generate waits the configured delay and returns the plan for topic.
func (g Generator) Generate(ctx context.Context, topic string) (model.StudyPlan, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.StudyPlan{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Lookup(topic), nil
}

// Render writes the plan as wrapped plain text. width <= 0 disables wrapping.
func Render(w io.Writer, plan model.StudyPlan, width int) error {
	var b strings.Builder
	section := func(title string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title)
		b.WriteString("\n")
	}
	para := func(prefix, text string) {
		b.WriteString(wrapIndented(prefix, text, width))
		b.WriteString("\n")
	}

	section(plan.Topic)
	for _, p := range strings.Split(plan.Summary, "\n\n") {
		para("", p)
	}
	if len(plan.KeyConcepts) > 0 {
		section("Key concepts")
		for _, c := range plan.KeyConcepts {
			para("- ", c)
		}
	}
	if len(plan.Schedule) > 0 {
		section("Schedule")
		for _, s := range plan.Schedule {
			para(s.Day+": ", s.Task)
		}
	}
	if len(plan.Videos) > 0 {
		section("Videos")
		for _, v := range plan.Videos {
			para("- ", v.Title+" <"+v.URL+">")
		}
	}
	if len(plan.ReadingMaterials) > 0 {
		section("Reading")
		for _, r := range plan.ReadingMaterials {
			para("- ", r.Title+" <"+r.URL+">")
		}
	}
	if len(plan.Exercises) > 0 {
		section("Exercises")
		for i, e := range plan.Exercises {
			para(fmt.Sprintf("%d. ", i+1), e.Question)
			para("   Answer: ", e.Answer)
		}
	}
	if len(plan.Tips) > 0 {
		section("Tips")
		for _, t := range plan.Tips {
			para("- ", t)
		}
	}
	if len(plan.FunFacts) > 0 {
		section("Fun facts")
		for _, f := range plan.FunFacts {
			para("- ", f)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
