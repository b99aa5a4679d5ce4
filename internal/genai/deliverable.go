package genai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"adworks/internal/campaign/domain"
)

// VisualMarker is the line prefix the text service uses to embed a visual
// description for the image service.
const VisualMarker = "VISUAL:"

// maxTextAttempts bounds the retry loop: one call plus one retry.
const maxTextAttempts = 2

// DeliverableGenerator produces the creative content for one deliverable.
type DeliverableGenerator struct {
	text    TextGenerator
	image   ImageGenerator
	backoff time.Duration
	now     func() time.Time
}

// NewDeliverableGenerator builds a deliverable generator. The image generator
// is optional; without one, visual descriptions are left unrendered.
func NewDeliverableGenerator(text TextGenerator, image ImageGenerator, backoff time.Duration, now func() time.Time) (*DeliverableGenerator, error) {
	if text == nil {
		return nil, fmt.Errorf("text generator is required")
	}
	if backoff < 0 {
		backoff = 0
	}
	if now == nil {
		now = time.Now
	}
	return &DeliverableGenerator{text: text, image: image, backoff: backoff, now: now}, nil
}

// Generate builds a context-rich prompt from the brief, selected concept, and
// any reviewer feedback, then calls the text service. A failed text call is
// retried once after a fixed backoff; a still-failing call surfaces to the
// caller. If the output carries a visual description, the image service is
// called separately and its failure is swallowed: the image is optional, the
// text is not.
func (g *DeliverableGenerator) Generate(ctx context.Context, deliverable domain.Deliverable, campaign domain.Campaign, concept domain.Concept, feedback string) (domain.GeneratedWork, error) {
	prompt := buildDeliverablePrompt(deliverable, campaign, concept, feedback)

	var content string
	var err error
	for attempt := 1; attempt <= maxTextAttempts; attempt++ {
		content, err = g.text.GenerateText(ctx, prompt)
		if err == nil {
			break
		}
		if attempt < maxTextAttempts {
			select {
			case <-time.After(g.backoff):
			case <-ctx.Done():
				return domain.GeneratedWork{}, ctx.Err()
			}
		}
	}
	if err != nil {
		return domain.GeneratedWork{}, fmt.Errorf("generate deliverable content: %w", err)
	}

	work := domain.GeneratedWork{
		Content:     content,
		GeneratedAt: g.now().UTC(),
	}

	if visual := extractVisualDescription(content); visual != "" && g.image != nil {
		size := ImageSizeForType(deliverable.Type)
		imageRef, imageErr := g.image.GenerateImage(ctx, visual, size)
		if imageErr != nil {
			log.Printf("image generation for deliverable %s skipped: %v", deliverable.ID, imageErr)
		} else {
			work.ImageRef = imageRef
		}
	}

	return work, nil
}

// extractVisualDescription returns the text after the first visual marker,
// up to the end of that line.
func extractVisualDescription(content string) string {
	idx := strings.Index(content, VisualMarker)
	if idx == -1 {
		return ""
	}
	rest := content[idx+len(VisualMarker):]
	if newline := strings.IndexByte(rest, '\n'); newline != -1 {
		rest = rest[:newline]
	}
	return strings.TrimSpace(rest)
}

func buildDeliverablePrompt(deliverable domain.Deliverable, campaign domain.Campaign, concept domain.Concept, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the creative lead at an advertising agency producing a %s for %s on %s.\n\n",
		deliverable.Type, campaign.ClientName, deliverable.Platform)
	fmt.Fprintf(&b, "Campaign: %s\n", campaign.Name)
	fmt.Fprintf(&b, "Challenge: %s\n", campaign.Brief.Challenge)
	fmt.Fprintf(&b, "Audience: %s\n", campaign.Brief.Audience)
	fmt.Fprintf(&b, "Key message: %s\n", campaign.Brief.Message)
	if campaign.Brief.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", campaign.Brief.Tone)
	}
	if campaign.Brief.Constraints != "" {
		fmt.Fprintf(&b, "Constraints: %s\n", campaign.Brief.Constraints)
	}
	fmt.Fprintf(&b, "\nSelected concept: %s (%q)\n%s\n", concept.Name, concept.Tagline, concept.BigIdea)
	fmt.Fprintf(&b, "\nDeliverable: %s\n", deliverable.Description)
	if feedback != "" {
		fmt.Fprintf(&b, "\nReviewer feedback to address in this revision:\n%s\n", feedback)
	}
	fmt.Fprintf(&b, "\nWrite the finished copy for this deliverable. If the piece needs imagery, include one line starting with %q describing the visual.", VisualMarker)
	return b.String()
}
