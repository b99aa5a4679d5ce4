package domain

import "time"

// EventKind identifies a bonus-event type from the catalog.
type EventKind string

const (
	EventAwardCannes      EventKind = "award_cannes"
	EventAwardRegional    EventKind = "award_regional"
	EventViralMoment      EventKind = "viral_moment"
	EventClientReferral   EventKind = "client_referral"
	EventPressFeature     EventKind = "press_feature"
	EventCaseStudyRequest EventKind = "case_study_request"
	EventBacklash         EventKind = "backlash"
)

// BonusEvent is a delayed reputation-affecting occurrence tied to a
// submitted campaign. Created once; the only transition is pending to
// delivered, and a fired event is never un-scheduled.
type BonusEvent struct {
	ID              string
	Kind            EventKind
	CampaignID      string
	ReputationDelta int
	Title           string
	Description     string
	ScheduledFor    time.Time
	Delivered       bool
}

// CatalogEntry describes one possible bonus event: its eligibility gate,
// firing probability, reputation delta, and delivery delay range.
type CatalogEntry struct {
	Kind        EventKind
	Title       string
	Description string
	MinScore    int
	Probability float64
	Delta       int
	MinDelay    time.Duration
	MaxDelay    time.Duration

	// BoldnessWeighted marks kinds whose probability scales with the
	// selected concept's boldness (multiplied by 0.5 + boldness).
	BoldnessWeighted bool
}

// Catalog is the static table of positive bonus events rolled on submission.
// Delays are expressed in units of the scheduler's configured delay base.
var Catalog = []CatalogEntry{
	{
		Kind:        EventAwardCannes,
		Title:       "Cannes Lions Shortlist",
		Description: "The campaign has been shortlisted for a Cannes Lion.",
		MinScore:    95, Probability: 0.25, Delta: 8,
		MinDelay: 3 * time.Minute, MaxDelay: 8 * time.Minute,
	},
	{
		Kind:        EventAwardRegional,
		Title:       "Regional Ad Award",
		Description: "The campaign took home a regional advertising award.",
		MinScore:    88, Probability: 0.40, Delta: 4,
		MinDelay: 2 * time.Minute, MaxDelay: 6 * time.Minute,
	},
	{
		Kind:        EventViralMoment,
		Title:       "Gone Viral",
		Description: "A spot from the campaign is everywhere this week.",
		MinScore:    80, Probability: 0.30, Delta: 5,
		MinDelay: 1 * time.Minute, MaxDelay: 4 * time.Minute,
		BoldnessWeighted: true,
	},
	{
		Kind:        EventClientReferral,
		Title:       "Client Referral",
		Description: "The client recommended the agency to a partner brand.",
		MinScore:    75, Probability: 0.35, Delta: 3,
		MinDelay: 2 * time.Minute, MaxDelay: 5 * time.Minute,
	},
	{
		Kind:        EventPressFeature,
		Title:       "Trade Press Feature",
		Description: "An industry publication profiled the campaign.",
		MinScore:    85, Probability: 0.30, Delta: 3,
		MinDelay: 2 * time.Minute, MaxDelay: 6 * time.Minute,
	},
	{
		Kind:        EventCaseStudyRequest,
		Title:       "Case Study Request",
		Description: "A marketing school asked to teach the campaign.",
		MinScore:    70, Probability: 0.25, Delta: 2,
		MinDelay: 3 * time.Minute, MaxDelay: 7 * time.Minute,
	},
}

// BacklashEntry is the negative event rolled for low-scoring campaigns built
// on a bold concept. It is gated separately from the catalog: eligibility is
// score below BacklashMaxScore and boldness above BacklashMinBoldness.
var BacklashEntry = CatalogEntry{
	Kind:        EventBacklash,
	Title:       "Public Backlash",
	Description: "The campaign's big swing missed, and social media noticed.",
	Probability: 0.35, Delta: -4,
	MinDelay: 1 * time.Minute, MaxDelay: 3 * time.Minute,
}

// Backlash eligibility gates.
const (
	BacklashMaxScore    = 70
	BacklashMinBoldness = 0.6
)
