package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"adworks/internal/campaign/domain"
	"adworks/internal/platform/id"
)

// Suggested-deliverable counts a concept must stay within.
const (
	minSuggestedDeliverables = 3
	maxSuggestedDeliverables = 6
	maxTemplateQuantity      = 5
)

// ErrNoConcepts indicates the collaborator returned no usable concepts.
// Callers treat it as retryable.
var ErrNoConcepts = fmt.Errorf("collaborator returned no concepts")

// ConceptGenerator asks the text service for structured campaign concepts.
type ConceptGenerator struct {
	text        TextGenerator
	idGenerator func() (string, error)
}

// NewConceptGenerator builds a concept generator. The ID generator is
// injectable for tests.
func NewConceptGenerator(text TextGenerator, idGenerator func() (string, error)) (*ConceptGenerator, error) {
	if text == nil {
		return nil, fmt.Errorf("text generator is required")
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return &ConceptGenerator{text: text, idGenerator: idGenerator}, nil
}

// conceptPayload is the expected collaborator response shape. Enum fields are
// decoded as raw strings and validated against the domain's closed sets; the
// payload's shape is never trusted directly.
type conceptPayload struct {
	Concepts []struct {
		Name         string   `json:"name"`
		Tagline      string   `json:"tagline"`
		BigIdea      string   `json:"big_idea"`
		Channels     []string `json:"channels"`
		Deliverables []struct {
			Type        string `json:"type"`
			Platform    string `json:"platform"`
			Quantity    int    `json:"quantity"`
			Description string `json:"description"`
		} `json:"deliverables"`
		Tone      string  `json:"tone"`
		Rationale string  `json:"rationale"`
		Boldness  float64 `json:"boldness"`
	} `json:"concepts"`
}

// Generate produces one or more structured concepts for a campaign brief.
// Malformed or empty responses surface as retryable errors; the concepts list
// is populated all-or-nothing.
func (g *ConceptGenerator) Generate(ctx context.Context, brief domain.Brief, teamMemberIDs []string, direction string) ([]domain.Concept, error) {
	prompt := buildConceptPrompt(brief, teamMemberIDs, direction)

	raw, err := g.text.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate concepts: %w", err)
	}

	var payload conceptPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("decode concepts: %w", err)
	}
	if len(payload.Concepts) == 0 {
		return nil, ErrNoConcepts
	}

	concepts := make([]domain.Concept, 0, len(payload.Concepts))
	for _, entry := range payload.Concepts {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("decode concepts: concept name is required")
		}
		if len(entry.Deliverables) < minSuggestedDeliverables || len(entry.Deliverables) > maxSuggestedDeliverables {
			return nil, fmt.Errorf("decode concepts: concept %q has %d deliverable templates, expected %d to %d",
				name, len(entry.Deliverables), minSuggestedDeliverables, maxSuggestedDeliverables)
		}

		conceptID, err := g.idGenerator()
		if err != nil {
			return nil, fmt.Errorf("generate concept id: %w", err)
		}

		templates := make([]domain.SuggestedDeliverable, 0, len(entry.Deliverables))
		for _, tpl := range entry.Deliverables {
			deliverableType, ok := domain.NormalizeDeliverableType(tpl.Type)
			if !ok {
				log.Printf("concept %q: unknown deliverable type %q, using %q", name, tpl.Type, deliverableType)
			}
			platform, ok := domain.NormalizePlatform(tpl.Platform)
			if !ok {
				log.Printf("concept %q: unknown platform %q, using %q", name, tpl.Platform, platform)
			}
			quantity := tpl.Quantity
			if quantity < 1 {
				quantity = 1
			}
			if quantity > maxTemplateQuantity {
				quantity = maxTemplateQuantity
			}
			templates = append(templates, domain.SuggestedDeliverable{
				Type:        deliverableType,
				Platform:    platform,
				Quantity:    quantity,
				Description: strings.TrimSpace(tpl.Description),
			})
		}

		boldness := entry.Boldness
		if boldness < 0 {
			boldness = 0
		}
		if boldness > 1 {
			boldness = 1
		}

		concepts = append(concepts, domain.Concept{
			ID:           conceptID,
			Name:         name,
			Tagline:      strings.TrimSpace(entry.Tagline),
			BigIdea:      strings.TrimSpace(entry.BigIdea),
			Channels:     entry.Channels,
			Deliverables: templates,
			Tone:         strings.TrimSpace(entry.Tone),
			Rationale:    strings.TrimSpace(entry.Rationale),
			Boldness:     boldness,
		})
	}

	return concepts, nil
}

// extractJSON strips markdown code fences the text service sometimes wraps
// around JSON output.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

func buildConceptPrompt(brief domain.Brief, teamMemberIDs []string, direction string) string {
	var b strings.Builder
	b.WriteString("You are a creative strategy team at an advertising agency developing campaign concepts.\n\n")
	fmt.Fprintf(&b, "Challenge: %s\n", brief.Challenge)
	fmt.Fprintf(&b, "Audience: %s\n", brief.Audience)
	fmt.Fprintf(&b, "Key message: %s\n", brief.Message)
	if brief.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", brief.Tone)
	}
	if brief.SuccessMetrics != "" {
		fmt.Fprintf(&b, "Success metrics: %s\n", brief.SuccessMetrics)
	}
	if brief.Constraints != "" {
		fmt.Fprintf(&b, "Constraints: %s\n", brief.Constraints)
	}
	fmt.Fprintf(&b, "Team: %d concepting members assigned.\n", len(teamMemberIDs))
	if strings.TrimSpace(direction) != "" {
		fmt.Fprintf(&b, "\nStrategic direction from the account lead:\n%s\n", strings.TrimSpace(direction))
	}
	fmt.Fprintf(&b, `
Respond with JSON only, shaped as {"concepts": [...]}. Each concept needs
"name", "tagline", "big_idea", "channels", "tone", "rationale", a "boldness"
value between 0 and 1, and %d to %d "deliverables" entries, each with "type",
"platform", "quantity", and "description".`, minSuggestedDeliverables, maxSuggestedDeliverables)
	return b.String()
}
