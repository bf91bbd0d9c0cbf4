package studyplan

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestLookupDispatch(t *testing.T) {
	cases := []struct {
		topic string
		want  string
	}{
		{topic: "Historia del PERU", want: peruPlan.Topic},
		{topic: "los incas", want: peruPlan.Topic},
		{topic: "Arquitectura griega", want: romanPlan.Topic},
		{topic: "la ciudad ROMANA", want: romanPlan.Topic},
		{topic: "inca y romana", want: peruPlan.Topic},
		{topic: "cálculo integrales", want: defaultPlan.Topic},
		{topic: "Roman architecture", want: defaultPlan.Topic},
		{topic: "", want: defaultPlan.Topic},
	}
	for _, tc := range cases {
		if got := Lookup(tc.topic).Topic; got != tc.want {
			t.Fatalf("topic %q: expected %q, got %q", tc.topic, tc.want, got)
		}
	}
}

func TestGenerateWaitsAndReturnsPlan(t *testing.T) {
	g := Generator{Delay: 10 * time.Millisecond}
	started := time.Now()
	plan, err := g.Generate(context.Background(), "inca")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Since(started) < 10*time.Millisecond {
		t.Fatalf("expected generate to wait the delay")
	}
	if plan.Topic != peruPlan.Topic {
		t.Fatalf("unexpected plan %q", plan.Topic)
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generator{Delay: time.Hour}.Generate(ctx, "inca")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderWrapsToWidth(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, romanPlan, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, heading := range []string{"Roman Architecture", "Key concepts", "Schedule", "Videos", "Reading", "Exercises", "Tips", "Fun facts"} {
		if !strings.Contains(out, heading+"\n") {
			t.Fatalf("missing section %q", heading)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if runewidth.StringWidth(line) > 60 && !strings.Contains(line, "http") {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestRenderSkipsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, defaultPlan, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "Reading\n") {
		t.Fatalf("expected no reading section for the default plan")
	}
}

func TestWrapWords(t *testing.T) {
	got := wrapWords("aa bb cc dd", 5)
	want := []string{"aa bb", "cc dd"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	got = wrapWords("abcdefgh", 3)
	if strings.Join(got, "|") != "abc|def|gh" {
		t.Fatalf("expected hard break, got %v", got)
	}
	if got := wrapIndented("- ", "one two three", 9); got != "- one two\n  three" {
		t.Fatalf("unexpected indent wrap %q", got)
	}
}
