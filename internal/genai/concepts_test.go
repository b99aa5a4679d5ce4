package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"adworks/internal/campaign/domain"
)

func sequentialIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

const validConceptJSON = `{
  "concepts": [
    {
      "name": "Cold Open",
      "tagline": "Winter never asked permission",
      "big_idea": "Treat the season as the antagonist.",
      "channels": ["social", "ooh"],
      "tone": "wry",
      "rationale": "The audience distrusts earnestness.",
      "boldness": 0.8,
      "deliverables": [
        {"type": "video", "platform": "youtube", "quantity": 1, "description": "hero film"},
        {"type": "social_post", "platform": "instagram", "quantity": 3, "description": "teasers"},
        {"type": "billboard", "platform": "ooh", "quantity": 1, "description": "transit takeover"}
      ]
    }
  ]
}`

func TestConceptGeneratorDecodesConcepts(t *testing.T) {
	text := &fakeTextGenerator{responses: []string{validConceptJSON}}
	gen, err := NewConceptGenerator(text, sequentialIDs("con"))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	concepts, err := gen.Generate(context.Background(), domain.Brief{Challenge: "stale brand"}, []string{"m1", "m2"}, "lean playful")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(concepts) != 1 {
		t.Fatalf("expected 1 concept, got %d", len(concepts))
	}

	concept := concepts[0]
	if concept.ID != "con-1" {
		t.Fatalf("concept id = %q", concept.ID)
	}
	if concept.Name != "Cold Open" {
		t.Fatalf("concept name = %q", concept.Name)
	}
	if concept.Boldness != 0.8 {
		t.Fatalf("boldness = %v", concept.Boldness)
	}
	if len(concept.Deliverables) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(concept.Deliverables))
	}
	if concept.Deliverables[0].Type != domain.DeliverableTypeVideo {
		t.Fatalf("template type = %q", concept.Deliverables[0].Type)
	}
	if concept.Deliverables[1].Quantity != 3 {
		t.Fatalf("template quantity = %d", concept.Deliverables[1].Quantity)
	}

	prompt := text.prompts[0]
	if !strings.Contains(prompt, "lean playful") {
		t.Fatalf("expected direction in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "2 concepting members") {
		t.Fatalf("expected team size in prompt, got %q", prompt)
	}
}

func TestConceptGeneratorStripsCodeFences(t *testing.T) {
	text := &fakeTextGenerator{responses: []string{"```json\n" + validConceptJSON + "\n```"}}
	gen, err := NewConceptGenerator(text, sequentialIDs("con"))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	concepts, err := gen.Generate(context.Background(), domain.Brief{}, nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(concepts) != 1 {
		t.Fatalf("expected 1 concept, got %d", len(concepts))
	}
}

func TestConceptGeneratorSubstitutesUnknownEnums(t *testing.T) {
	payload := strings.Replace(validConceptJSON, `"type": "video"`, `"type": "hologram"`, 1)
	payload = strings.Replace(payload, `"platform": "youtube"`, `"platform": "metaverse"`, 1)
	text := &fakeTextGenerator{responses: []string{payload}}
	gen, err := NewConceptGenerator(text, sequentialIDs("con"))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	concepts, err := gen.Generate(context.Background(), domain.Brief{}, nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if concepts[0].Deliverables[0].Type != domain.DefaultDeliverableType {
		t.Fatalf("expected default type, got %q", concepts[0].Deliverables[0].Type)
	}
	if concepts[0].Deliverables[0].Platform != domain.DefaultPlatform {
		t.Fatalf("expected default platform, got %q", concepts[0].Deliverables[0].Platform)
	}
}

func TestConceptGeneratorClampsQuantityAndBoldness(t *testing.T) {
	payload := strings.Replace(validConceptJSON, `"quantity": 3`, `"quantity": 99`, 1)
	payload = strings.Replace(payload, `"quantity": 1, "description": "hero film"`, `"quantity": 0, "description": "hero film"`, 1)
	payload = strings.Replace(payload, `"boldness": 0.8`, `"boldness": 7.5`, 1)
	text := &fakeTextGenerator{responses: []string{payload}}
	gen, err := NewConceptGenerator(text, sequentialIDs("con"))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	concepts, err := gen.Generate(context.Background(), domain.Brief{}, nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if concepts[0].Deliverables[0].Quantity != 1 {
		t.Fatalf("expected quantity floor 1, got %d", concepts[0].Deliverables[0].Quantity)
	}
	if concepts[0].Deliverables[1].Quantity != maxTemplateQuantity {
		t.Fatalf("expected quantity ceiling %d, got %d", maxTemplateQuantity, concepts[0].Deliverables[1].Quantity)
	}
	if concepts[0].Boldness != 1 {
		t.Fatalf("expected boldness clamped to 1, got %v", concepts[0].Boldness)
	}
}

func TestConceptGeneratorRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "here are some great ideas!"},
		{"missing name", `{"concepts":[{"name":"","deliverables":[{},{},{}]}]}`},
		{"too few templates", `{"concepts":[{"name":"X","deliverables":[{"type":"video"}]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := &fakeTextGenerator{responses: []string{tc.response}}
			gen, err := NewConceptGenerator(text, sequentialIDs("con"))
			if err != nil {
				t.Fatalf("new generator: %v", err)
			}
			if _, err := gen.Generate(context.Background(), domain.Brief{}, nil, ""); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestConceptGeneratorEmptyListIsRetryable(t *testing.T) {
	text := &fakeTextGenerator{responses: []string{`{"concepts":[]}`}}
	gen, err := NewConceptGenerator(text, sequentialIDs("con"))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	_, err = gen.Generate(context.Background(), domain.Brief{}, nil, "")
	if !errors.Is(err, ErrNoConcepts) {
		t.Fatalf("expected ErrNoConcepts, got %v", err)
	}
}

func TestConceptGeneratorTextFailurePropagates(t *testing.T) {
	text := &fakeTextGenerator{errs: []error{errors.New("service down")}}
	gen, err := NewConceptGenerator(text, sequentialIDs("con"))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	if _, err := gen.Generate(context.Background(), domain.Brief{}, nil, ""); err == nil {
		t.Fatal("expected error")
	}
}
