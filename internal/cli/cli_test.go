package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
)

type stubPlanner struct{}

func (stubPlanner) PlanQuestions(_ context.Context, _ request_models.TripBrief) []response_models.ClarifyingQuestion {
	return []response_models.ClarifyingQuestion{{ID: "q0", Text: "Do you want a relaxed trip?"}}
}

// stubGenerator fails for any destination listed in failFor.
type stubGenerator struct {
	mu      sync.Mutex
	failFor map[string]bool
	briefs  []request_models.TripBrief
}

func (s *stubGenerator) GenerateItinerary(_ context.Context, brief request_models.TripBrief) (*response_models.ItineraryResult, error) {
	s.mu.Lock()
	s.briefs = append(s.briefs, brief)
	s.mu.Unlock()

	if s.failFor[brief.Destination] {
		return nil, errors.New("backend unavailable")
	}
	return &response_models.ItineraryResult{
		Itinerary: []response_models.ItineraryDay{{Day: 1, Date: brief.StartDate}},
		Countries: []string{"Japan"},
	}, nil
}

func run(t *testing.T, gen *stubGenerator, args ...string) (string, error) {
	t.Helper()
	closed := false
	factory := func(context.Context) (*Runtime, error) {
		return &Runtime{
			Planner:   stubPlanner{},
			Generator: gen,
			Log:       zap.NewNop(),
			Close:     func() error { closed = true; return nil },
		}, nil
	}

	var out bytes.Buffer
	root := NewRootCmd(factory)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil && !closed {
		t.Error("expected the runtime to be closed")
	}
	return out.String(), err
}

func writeBrief(t *testing.T, dir, name, destination string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data, _ := json.Marshal(request_models.TripBrief{
		Destination: destination,
		StartDate:   "2025-04-01",
		EndDate:     "2025-04-01",
	})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestQuestionsCommand(t *testing.T) {
	brief := writeBrief(t, t.TempDir(), "kyoto.json", "Kyoto")

	out, err := run(t, &stubGenerator{}, "questions", "--brief", brief)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"id": "q0"`) {
		t.Errorf("expected questions in output, got %s", out)
	}
}

func TestGenerateCommand_MergesAnswersAndWritesFile(t *testing.T) {
	dir := t.TempDir()
	brief := writeBrief(t, dir, "kyoto.json", "Kyoto")
	answers := filepath.Join(dir, "answers.json")
	if err := os.WriteFile(answers, []byte(`[{"question":"Do you want a relaxed trip?","answer":"Yes"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out", "plan.json")

	gen := &stubGenerator{}
	if _, err := run(t, gen, "generate", "--brief", brief, "--answers", answers, "--out", outPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.briefs) != 1 || len(gen.briefs[0].ClarifyingAnswers) != 1 {
		t.Fatalf("expected the answers to be merged, got %+v", gen.briefs)
	}

	var result response_models.ItineraryResult
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected an output file: %v", err)
	}
	if err := json.Unmarshal(data, &result); err != nil || len(result.Itinerary) != 1 {
		t.Errorf("unexpected output file contents: %s", data)
	}
}

func TestGenerateCommand_PropagatesFailure(t *testing.T) {
	brief := writeBrief(t, t.TempDir(), "kyoto.json", "Kyoto")

	_, err := run(t, &stubGenerator{failFor: map[string]bool{"Kyoto": true}}, "generate", "--brief", brief)
	if err == nil || !strings.Contains(err.Error(), "backend unavailable") {
		t.Fatalf("expected the backend error, got %v", err)
	}
}

func TestBatchCommand_ContinuesPastFailures(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()
	writeBrief(t, in, "a.json", "Kyoto")
	writeBrief(t, in, "b.json", "Atlantis")
	writeBrief(t, in, "c.json", "Lisbon")

	gen := &stubGenerator{failFor: map[string]bool{"Atlantis": true}}
	out, err := run(t, gen, "batch", "--dir", in, "--out-dir", outDir, "--concurrency", "2")
	if err == nil {
		t.Fatal("expected an error summarising the failed brief")
	}
	if len(gen.briefs) != 3 {
		t.Errorf("expected every brief to be attempted, got %d", len(gen.briefs))
	}
	if !strings.Contains(out, "2 of 3 itineraries generated") || !strings.Contains(out, "b.json") {
		t.Errorf("unexpected summary: %s", out)
	}
	for _, name := range []string{"a.itinerary.json", "c.itinerary.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "b.itinerary.json")); err == nil {
		t.Error("expected no output for the failed brief")
	}
}

func TestBatchCommand_RejectsBadConcurrency(t *testing.T) {
	if _, err := run(t, &stubGenerator{}, "batch", "--dir", t.TempDir(), "--out-dir", t.TempDir(), "--concurrency", "0"); err == nil {
		t.Fatal("expected an error")
	}
}
