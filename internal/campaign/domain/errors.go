package domain

import "errors"

var (
	// ErrEmptyClientName indicates a missing client name.
	ErrEmptyClientName = errors.New("client name is required")
	// ErrEmptyCampaignName indicates a missing campaign name.
	ErrEmptyCampaignName = errors.New("campaign name is required")
	// ErrInvalidBudget indicates a non-positive client budget.
	ErrInvalidBudget = errors.New("client budget must be positive")
	// ErrInvalidTeamSize indicates a team headcount outside 0 or 2-4.
	ErrInvalidTeamSize = errors.New("team must have 2 to 4 members")
	// ErrTeamLocked indicates the concepting team can no longer change.
	ErrTeamLocked = errors.New("team cannot change after concepts are generated")
	// ErrNoTeamAssigned indicates concept generation requires a team.
	ErrNoTeamAssigned = errors.New("a concepting team must be assigned")
	// ErrGenerationInProgress indicates a concept generation is already running.
	ErrGenerationInProgress = errors.New("concept generation already in progress")
	// ErrNoConceptSelected indicates deliverable generation requires a concept.
	ErrNoConceptSelected = errors.New("a concept must be selected")
	// ErrUnknownConcept indicates the concept id does not exist on the campaign.
	ErrUnknownConcept = errors.New("concept not found")
	// ErrConceptLocked indicates the selection can no longer change.
	ErrConceptLocked = errors.New("concept cannot change after deliverables are generated")
	// ErrUnknownDeliverable indicates the deliverable id does not exist.
	ErrUnknownDeliverable = errors.New("deliverable not found")
	// ErrInvalidPhase indicates the operation is not allowed in the current phase.
	ErrInvalidPhase = errors.New("operation not allowed in current phase")
	// ErrInvalidStatus indicates a disallowed deliverable status transition.
	ErrInvalidStatus = errors.New("deliverable status disallows operation")
	// ErrUnapprovedDeliverables indicates not every deliverable is approved.
	ErrUnapprovedDeliverables = errors.New("all deliverables must be approved")
	// ErrNoRevisionsRequested indicates no deliverable is flagged for revision.
	ErrNoRevisionsRequested = errors.New("no deliverables need revision")
)
