package domain

// SuggestedDeliverable is a deliverable template carried by a concept. The
// campaign service expands templates into concrete deliverable records when
// the concept is taken to production.
type SuggestedDeliverable struct {
	Type        DeliverableType
	Platform    Platform
	Quantity    int
	Description string
}

// Concept is one candidate creative direction for a campaign.
type Concept struct {
	ID           string
	Name         string
	Tagline      string
	BigIdea      string
	Channels     []string
	Deliverables []SuggestedDeliverable
	Tone         string
	Rationale    string

	// Boldness is the concept's creative risk on a 0-1 scale. It weights
	// virality and backlash odds at scoring time.
	Boldness float64
}
