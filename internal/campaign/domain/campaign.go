package domain

import (
	"fmt"
	"strings"
	"time"

	"adworks/internal/platform/id"
)

// Brief is the client's problem statement. It is immutable once the campaign
// is created.
type Brief struct {
	Challenge      string
	Audience       string
	Message        string
	Tone           string
	SuccessMetrics string
	Constraints    string
	Industry       string
}

// Campaign is one unit of client work moving through the lifecycle.
type Campaign struct {
	ID         string
	ClientName string
	Name       string
	Brief      Brief

	ClientBudget     int
	TeamFee          int
	ProductionBudget int
	ProductionSpent  int

	StartDate   time.Time
	Deadline    time.Time
	SubmittedAt *time.Time

	Phase Phase

	TeamMemberIDs      []string
	Direction          string
	Concepts           []Concept
	SelectedConceptID  string
	GeneratingConcepts bool

	Deliverables []Deliverable

	ClientScore    *int
	ClientFeedback string

	ToolsUsed []string
}

// CreateCampaignInput describes the metadata needed to create a campaign.
type CreateCampaignInput struct {
	ClientName   string
	Name         string
	Brief        Brief
	ClientBudget int
	Deadline     time.Time
}

// CreateCampaign creates a new campaign in the concepting phase with a
// generated ID. The clock and ID generator are injectable for tests.
func CreateCampaign(input CreateCampaignInput, now func() time.Time, idGenerator func() (string, error)) (Campaign, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCampaignInput(input)
	if err != nil {
		return Campaign{}, err
	}

	campaignID, err := idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate campaign id: %w", err)
	}

	return Campaign{
		ID:               campaignID,
		ClientName:       normalized.ClientName,
		Name:             normalized.Name,
		Brief:            normalized.Brief,
		ClientBudget:     normalized.ClientBudget,
		ProductionBudget: normalized.ClientBudget,
		StartDate:        now().UTC(),
		Deadline:         normalized.Deadline,
		Phase:            PhaseConcepting,
	}, nil
}

// NormalizeCreateCampaignInput trims and validates campaign input metadata.
func NormalizeCreateCampaignInput(input CreateCampaignInput) (CreateCampaignInput, error) {
	input.ClientName = strings.TrimSpace(input.ClientName)
	if input.ClientName == "" {
		return CreateCampaignInput{}, ErrEmptyClientName
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateCampaignInput{}, ErrEmptyCampaignName
	}
	if input.ClientBudget <= 0 {
		return CreateCampaignInput{}, ErrInvalidBudget
	}
	return input, nil
}

// ConceptByID returns the concept with the given id.
func (c *Campaign) ConceptByID(conceptID string) (*Concept, bool) {
	for i := range c.Concepts {
		if c.Concepts[i].ID == conceptID {
			return &c.Concepts[i], true
		}
	}
	return nil, false
}

// DeliverableByID returns the deliverable with the given id.
func (c *Campaign) DeliverableByID(deliverableID string) (*Deliverable, bool) {
	for i := range c.Deliverables {
		if c.Deliverables[i].ID == deliverableID {
			return &c.Deliverables[i], true
		}
	}
	return nil, false
}

// AllDeliverablesApproved reports whether every deliverable is approved.
// A campaign with no deliverables is not considered approved.
func (c *Campaign) AllDeliverablesApproved() bool {
	if len(c.Deliverables) == 0 {
		return false
	}
	for i := range c.Deliverables {
		if c.Deliverables[i].Status != StatusApproved {
			return false
		}
	}
	return true
}

// RecomputeProductionSpent restores the invariant that production spend
// equals the sum of current deliverable production costs.
func (c *Campaign) RecomputeProductionSpent() {
	total := 0
	for i := range c.Deliverables {
		total += c.Deliverables[i].ProductionCost
	}
	c.ProductionSpent = total
}

// RecordToolUse adds a tool id to the campaign's tool-usage set.
func (c *Campaign) RecordToolUse(toolID string) {
	toolID = strings.TrimSpace(toolID)
	if toolID == "" {
		return
	}
	for _, used := range c.ToolsUsed {
		if used == toolID {
			return
		}
	}
	c.ToolsUsed = append(c.ToolsUsed, toolID)
}
