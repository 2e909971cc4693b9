package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/langmirror/langmirror/internal/persona"
	"github.com/langmirror/langmirror/pkg/provider/llm"
)

type stubBackend struct {
	name    string
	content string
	err     error
	calls   int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

var (
	testLang  = persona.Language{Key: "italian", Name: "Italian", TranslateCode: "it"}
	testTutor = persona.Persona{Key: "roman", Name: "Marco", Region: "Rome", Greeting: "Ao! Ciao!"}
)

const goodReply = `{"reaction": "Ha!", "correction": "Not quite.", "response": "Va bene!", "cultural_note": "", "encouragement": "Keep going."}`

func testRequest() Request {
	return Request{Transcript: "Ciao, come stai?", Language: testLang, Tutor: testTutor}
}

func mustGenerator(t *testing.T, backends ...llm.Provider) *Generator {
	t.Helper()
	g, err := NewGenerator(backends, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGenerateFirstBackendSucceeds(t *testing.T) {
	first := &stubBackend{name: "a", content: goodReply}
	second := &stubBackend{name: "b", content: goodReply}
	g := mustGenerator(t, first, second)

	fb, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fb.Reaction != "Ha!" || fb.NativeResponse != "Va bene!" {
		t.Errorf("unexpected feedback: %+v", fb)
	}
	if second.calls != 0 {
		t.Error("second backend called although first succeeded")
	}
}

func TestGenerateFallsPastQuotaAndMissingModels(t *testing.T) {
	g := mustGenerator(t,
		&stubBackend{name: "a", err: fmt.Errorf("wrap: %w", llm.ErrQuotaExhausted)},
		&stubBackend{name: "b", err: fmt.Errorf("wrap: %w", llm.ErrModelNotFound)},
		&stubBackend{name: "c", content: goodReply},
	)

	fb, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fb.Correction != "Not quite." {
		t.Errorf("Correction = %q, want from third backend", fb.Correction)
	}
}

func TestGenerateAllQuotaLimitedDegrades(t *testing.T) {
	g := mustGenerator(t,
		&stubBackend{name: "a", err: fmt.Errorf("wrap: %w", llm.ErrQuotaExhausted)},
		&stubBackend{name: "b", err: fmt.Errorf("wrap: %w", llm.ErrQuotaExhausted)},
	)

	fb, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate should degrade, got error: %v", err)
	}
	if fb.Reaction != "I heard you!" {
		t.Errorf("Reaction = %q, want canned fallback", fb.Reaction)
	}
	if fb.NativeResponse != testTutor.Greeting {
		t.Errorf("NativeResponse = %q, want greeting", fb.NativeResponse)
	}
}

func TestGenerateHardFailure(t *testing.T) {
	g := mustGenerator(t,
		&stubBackend{name: "a", err: fmt.Errorf("wrap: %w", llm.ErrQuotaExhausted)},
		&stubBackend{name: "b", err: errors.New("connection refused")},
	)

	_, err := g.Generate(context.Background(), testRequest())
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("err = %v, want ErrAnalysisFailed", err)
	}
}

func TestGenerateContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := mustGenerator(t, &stubBackend{name: "a", content: goodReply})
	_, err := g.Generate(ctx, testRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestGenerateParsesFencedJSON(t *testing.T) {
	fenced := "Here you go:\n```json\n" + goodReply + "\n```\n"
	g := mustGenerator(t, &stubBackend{name: "a", content: fenced})

	fb, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fb.Reaction != "Ha!" {
		t.Errorf("Reaction = %q, want Ha!", fb.Reaction)
	}
}

func TestGenerateRepairsNearJSON(t *testing.T) {
	// Trailing comma and single quotes: invalid JSON a repair pass can fix.
	broken := `{"reaction": "Ha!", "correction": "Not quite.", "response": "Va bene!", "cultural_note": "", "encouragement": "Keep going.",}`
	g := mustGenerator(t, &stubBackend{name: "a", content: broken})

	fb, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fb.Reaction != "Ha!" {
		t.Errorf("Reaction = %q, want repaired JSON to parse", fb.Reaction)
	}
}

func TestGenerateUnparseableOutputDegrades(t *testing.T) {
	g := mustGenerator(t, &stubBackend{name: "a", content: "I am not JSON at all."})

	fb, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate should degrade, got error: %v", err)
	}
	if fb.Correction != "Let me help you with that." {
		t.Errorf("Correction = %q, want parse fallback", fb.Correction)
	}
}

func TestMismatchFeedback(t *testing.T) {
	fb := MismatchFeedback(testLang, testTutor, "Wrong language!")
	if fb.Correction != "Wrong language!" {
		t.Errorf("Correction = %q", fb.Correction)
	}
	if fb.NativeResponse != testTutor.Greeting {
		t.Errorf("NativeResponse = %q, want greeting", fb.NativeResponse)
	}
	if !strings.Contains(fb.Encouragement, "Italian") {
		t.Errorf("Encouragement %q should name the language", fb.Encouragement)
	}
}

func TestBuildPromptIncludesRecentHistoryOnly(t *testing.T) {
	history := []Turn{
		{User: "turn-one", Tutor: "reply-one"},
		{User: "turn-two", Tutor: "reply-two"},
		{User: "turn-three", Tutor: "reply-three"},
	}
	prompt := buildPrompt(testLang, testTutor, "Ciao", history)

	if strings.Contains(prompt, "turn-one") {
		t.Error("prompt includes history beyond the last two turns")
	}
	if !strings.Contains(prompt, "turn-two") || !strings.Contains(prompt, "turn-three") {
		t.Error("prompt missing the last two turns")
	}
	if !strings.Contains(prompt, "Marco") || !strings.Contains(prompt, "Rome") {
		t.Error("prompt missing persona identity")
	}
	if !strings.Contains(prompt, `"Ciao"`) {
		t.Error("prompt missing learner transcript")
	}
}
