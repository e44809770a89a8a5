package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/assoumso/au-djassa/pkg/genai"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

type fakeGenerator struct {
	text     string
	jsonText string
	err      error

	lastPrompt string
	lastSchema *genai.Schema
}

func (f *fakeGenerator) GenerateText(ctx context.Context, req genai.GenerateRequest) (string, error) {
	f.lastPrompt = req.Prompt
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema genai.Schema, out any) error {
	f.lastPrompt = prompt
	f.lastSchema = &schema
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.jsonText), out)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
}

func TestDescribeProduct(t *testing.T) {
	gen := &fakeGenerator{jsonText: `{"description":"Une machine fiable.","tags":["textile","pro"]}`}
	svc := NewService(gen, testLogger())

	got, err := svc.DescribeProduct(context.Background(), "Machine à Coudre", "Textile", "rapide, solide")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got.Description != "Une machine fiable." || len(got.Tags) != 2 {
		t.Fatalf("unexpected copy %+v", got)
	}
	if !strings.Contains(gen.lastPrompt, `"Machine à Coudre"`) || !strings.Contains(gen.lastPrompt, `"Textile"`) {
		t.Fatalf("prompt missing product context: %s", gen.lastPrompt)
	}
	if gen.lastSchema == nil || gen.lastSchema.Type != "OBJECT" {
		t.Fatal("expected structured-output schema")
	}
}

func TestDescribeProductPropagatesErrors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewService(gen, testLogger())

	if _, err := svc.DescribeProduct(context.Background(), "X", "Y", "Z"); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestAnalyzeTrendsIncludesCatalogue(t *testing.T) {
	gen := &fakeGenerator{text: "Catalogue varié."}
	svc := NewService(gen, testLogger())

	got := svc.AnalyzeTrends(context.Background(), []models.Product{
		{Name: "Cacao", Category: "Agriculture", Price: 25000},
	})
	if got != "Catalogue varié." {
		t.Fatalf("unexpected summary %q", got)
	}
	if !strings.Contains(gen.lastPrompt, "Cacao (Agriculture) - 25000 FCFA") {
		t.Fatalf("prompt missing product line: %s", gen.lastPrompt)
	}
}

func TestAnalyzeTrendsDegradesToPlaceholder(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("unreachable")}
	svc := NewService(gen, testLogger())

	if got := svc.AnalyzeTrends(context.Background(), nil); got != "Erreur lors de l'analyse des tendances." {
		t.Fatalf("unexpected placeholder %q", got)
	}
}

func TestDraftInquiryDegradesToPlaceholder(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("unreachable")}
	svc := NewService(gen, testLogger())

	if got := svc.DraftInquiry(context.Background(), "Cacao", "BioFerme", "prix de gros"); got != "Erreur lors de la génération du message." {
		t.Fatalf("unexpected placeholder %q", got)
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewService(nil, testLogger())

	if svc.Enabled() {
		t.Fatal("nil generator must disable the service")
	}
	if _, err := svc.DescribeProduct(context.Background(), "X", "Y", "Z"); err == nil {
		t.Fatal("expected error from disabled describe")
	}
	if got := svc.AnalyzeTrends(context.Background(), nil); got != "Analyse indisponible." {
		t.Fatalf("unexpected placeholder %q", got)
	}
	if got := svc.DraftInquiry(context.Background(), "X", "Y", "Z"); got != "Impossible de générer le message." {
		t.Fatalf("unexpected placeholder %q", got)
	}
}
