// Package assistant renders the marketplace's generative-text features:
// product description drafting, catalogue trend analysis and supplier inquiry
// drafting. Prompts are in French, matching the storefront audience.
package assistant

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/genai"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

// Placeholder strings returned when the model is unreachable. Trend analysis
// and inquiry drafting degrade to these instead of failing; description
// generation propagates the error because the supplier is actively waiting on
// the result.
const (
	trendsUnavailable  = "Analyse indisponible."
	trendsFailed       = "Erreur lors de l'analyse des tendances."
	inquiryUnavailable = "Impossible de générer le message."
	inquiryFailed      = "Erreur lors de la génération du message."
)

// TextGenerator is the single-shot model call the service depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, req genai.GenerateRequest) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema genai.Schema, out any) error
}

// ProductCopy is a generated description plus its suggested tags.
type ProductCopy struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Service exposes the three assistant operations.
type Service struct {
	generator TextGenerator
	logg      *logger.Logger
}

// NewService wires the generator. A nil generator disables the assistant;
// callers get the degraded placeholders (or an error for descriptions).
func NewService(generator TextGenerator, logg *logger.Logger) *Service {
	return &Service{generator: generator, logg: logg}
}

// Enabled reports whether a model is configured.
func (s *Service) Enabled() bool {
	return s.generator != nil
}

var productCopySchema = genai.Schema{
	Type: "OBJECT",
	Properties: map[string]genai.Schema{
		"description": {Type: "STRING"},
		"tags":        {Type: "ARRAY", Items: &genai.Schema{Type: "STRING"}},
	},
	Required: []string{"description", "tags"},
}

// DescribeProduct drafts marketing copy and tags for a product form.
func (s *Service) DescribeProduct(ctx context.Context, productName, category, keywords string) (ProductCopy, error) {
	if !s.Enabled() {
		return ProductCopy{}, pkgerrors.New(pkgerrors.CodeDependency, "assistant is not configured")
	}
	prompt := fmt.Sprintf(`Agis comme un expert en marketing B2B.
Génère une description de produit attrayante et commerciale (environ 50-80 mots) en français pour un produit nommé "%s" dans la catégorie "%s".
Mots-clés fournis par l'utilisateur : "%s".

Génère également une liste de 3 à 5 tags pertinents.`, productName, category, keywords)

	var out ProductCopy
	if err := s.generator.GenerateJSON(ctx, prompt, productCopySchema, &out); err != nil {
		s.logg.Error(ctx, "product description generation failed", err)
		return ProductCopy{}, err
	}
	return out, nil
}

// AnalyzeTrends summarizes catalogue diversity and suggests a missing
// category. Failures degrade to a placeholder so the dashboard never breaks.
func (s *Service) AnalyzeTrends(ctx context.Context, products []models.Product) string {
	if !s.Enabled() {
		return trendsUnavailable
	}

	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s (%s) - %d FCFA", p.Name, p.Category, p.Price))
	}
	prompt := fmt.Sprintf(`Analyse la liste de produits suivante et donne un bref aperçu (en 2-3 phrases) de la diversité du catalogue et une suggestion de catégorie manquante qui pourrait être rentable.

Liste:
%s`, strings.Join(lines, "\n"))

	text, err := s.generator.GenerateText(ctx, genai.GenerateRequest{Prompt: prompt})
	if err != nil {
		s.logg.Error(ctx, "trend analysis failed", err)
		return trendsFailed
	}
	if strings.TrimSpace(text) == "" {
		return trendsUnavailable
	}
	return text
}

// DraftInquiry writes a short formal message from an interested buyer to a
// supplier. Failures degrade to a placeholder.
func (s *Service) DraftInquiry(ctx context.Context, productName, supplierName, intent string) string {
	if !s.Enabled() {
		return inquiryUnavailable
	}

	prompt := fmt.Sprintf(`Rédige un message professionnel court et poli (email) de la part d'un client intéressé par le produit "%s" vendu par "%s".
Intention spécifique du client : "%s".
Le ton doit être formel et professionnel. Le message doit être prêt à l'envoi.`, productName, supplierName, intent)

	text, err := s.generator.GenerateText(ctx, genai.GenerateRequest{Prompt: prompt})
	if err != nil {
		s.logg.Error(ctx, "inquiry drafting failed", err)
		return inquiryFailed
	}
	if strings.TrimSpace(text) == "" {
		return inquiryUnavailable
	}
	return text
}
