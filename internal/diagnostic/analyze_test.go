package diagnostic

import (
	"testing"

	"github.com/verte-zerg/studyflow/internal/model"
)

func TestAnalyzeArchetypes(t *testing.T) {
	cases := []struct {
		name    string
		answers map[int]model.AnswerValue
		want    string
	}{
		{name: "no answers", answers: nil, want: ArchetypePerfectionist},
		{name: "frequent", answers: map[int]model.AnswerValue{1: model.NumberAnswer(8)}, want: ArchetypeChronic},
		{name: "frequent wins over low urgency", answers: map[int]model.AnswerValue{
			1: model.NumberAnswer(9), 7: model.NumberAnswer(1),
		}, want: ArchetypeChronic},
		{name: "low urgency", answers: map[int]model.AnswerValue{
			1: model.NumberAnswer(3), 7: model.NumberAnswer(3),
		}, want: ArchetypeUnmotivated},
		{name: "zero frequency counts as midpoint", answers: map[int]model.AnswerValue{
			1: model.NumberAnswer(0), 7: model.NumberAnswer(6),
		}, want: ArchetypePerfectionist},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Analyze(tc.answers).Archetype; got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAnalyzeRadar(t *testing.T) {
	res := Analyze(map[int]model.AnswerValue{
		1: model.NumberAnswer(9),
		7: model.TextAnswer("8"),
		6: model.TextAnswer(ReasonPerfectionism),
	})
	if len(res.Radar) != 6 {
		t.Fatalf("expected 6 radar scores, got %d", len(res.Radar))
	}
	if res.Radar[0].Value != 30 {
		t.Fatalf("expected focus floored at 30, got %d", res.Radar[0].Value)
	}
	if res.Radar[1].Value != 80 {
		t.Fatalf("expected motivation 80, got %d", res.Radar[1].Value)
	}
	if !res.Perfectionism {
		t.Fatalf("expected perfectionism flagged")
	}
	if res.RecommendedPlan != model.PlanSilver {
		t.Fatalf("expected Silver plan, got %s", res.RecommendedPlan)
	}
}
