package domain

import (
	"strings"
	"time"
)

// DeliverableType identifies the kind of creative asset produced.
type DeliverableType string

const (
	DeliverableTypeUnspecified DeliverableType = ""
	DeliverableTypeVideo       DeliverableType = "video"
	DeliverableTypeSocialVideo DeliverableType = "social_video"
	DeliverableTypeSocialPost  DeliverableType = "social_post"
	DeliverableTypePrintAd     DeliverableType = "print_ad"
	DeliverableTypeBillboard   DeliverableType = "billboard"
	DeliverableTypeRadioSpot   DeliverableType = "radio_spot"
	DeliverableTypeLandingPage DeliverableType = "landing_page"
	DeliverableTypeEmailBlast  DeliverableType = "email_blast"
)

// DefaultDeliverableType substitutes for unrecognized types in external
// payloads.
const DefaultDeliverableType = DeliverableTypeSocialPost

// Platform identifies where a deliverable runs.
type Platform string

const (
	PlatformUnspecified Platform = ""
	PlatformTV          Platform = "tv"
	PlatformYouTube     Platform = "youtube"
	PlatformInstagram   Platform = "instagram"
	PlatformTikTok      Platform = "tiktok"
	PlatformOOH         Platform = "ooh"
	PlatformPrint       Platform = "print"
	PlatformRadio       Platform = "radio"
	PlatformWeb         Platform = "web"
	PlatformEmail       Platform = "email"
)

// DefaultPlatform substitutes for unrecognized platforms in external payloads.
const DefaultPlatform = PlatformWeb

// DeliverableStatus tracks one deliverable through production.
type DeliverableStatus string

const (
	StatusNotStarted       DeliverableStatus = "not_started"
	StatusInProgress       DeliverableStatus = "in_progress"
	StatusReadyForReview   DeliverableStatus = "ready_for_review"
	StatusNeedsRevision    DeliverableStatus = "needs_revision"
	StatusApproved         DeliverableStatus = "approved"
	StatusGenerationFailed DeliverableStatus = "generation_failed"
)

// productionCosts is the fixed production cost per deliverable type.
var productionCosts = map[DeliverableType]int{
	DeliverableTypeVideo:       50_000,
	DeliverableTypeSocialVideo: 18_000,
	DeliverableTypeSocialPost:  8_000,
	DeliverableTypePrintAd:     20_000,
	DeliverableTypeBillboard:   30_000,
	DeliverableTypeRadioSpot:   15_000,
	DeliverableTypeLandingPage: 12_000,
	DeliverableTypeEmailBlast:  5_000,
}

// ProductionCostForType returns the fixed production cost for a deliverable
// type. Unknown types cost the same as the default type.
func ProductionCostForType(deliverableType DeliverableType) int {
	if cost, ok := productionCosts[deliverableType]; ok {
		return cost
	}
	return productionCosts[DefaultDeliverableType]
}

// NormalizeDeliverableType canonicalizes a type label from an external
// payload. The second return reports whether the label was recognized.
func NormalizeDeliverableType(value string) (DeliverableType, bool) {
	trimmed := DeliverableType(strings.ToLower(strings.TrimSpace(value)))
	switch trimmed {
	case DeliverableTypeVideo, DeliverableTypeSocialVideo, DeliverableTypeSocialPost,
		DeliverableTypePrintAd, DeliverableTypeBillboard, DeliverableTypeRadioSpot,
		DeliverableTypeLandingPage, DeliverableTypeEmailBlast:
		return trimmed, true
	default:
		return DefaultDeliverableType, false
	}
}

// NormalizePlatform canonicalizes a platform label from an external payload.
// The second return reports whether the label was recognized.
func NormalizePlatform(value string) (Platform, bool) {
	trimmed := Platform(strings.ToLower(strings.TrimSpace(value)))
	switch trimmed {
	case PlatformTV, PlatformYouTube, PlatformInstagram, PlatformTikTok,
		PlatformOOH, PlatformPrint, PlatformRadio, PlatformWeb, PlatformEmail:
		return trimmed, true
	default:
		return DefaultPlatform, false
	}
}

// IsStatusTransitionAllowed enforces valid deliverable status transitions.
func IsStatusTransitionAllowed(from, to DeliverableStatus) bool {
	switch from {
	case StatusNotStarted:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusReadyForReview || to == StatusGenerationFailed
	case StatusReadyForReview:
		return to == StatusApproved || to == StatusNeedsRevision
	case StatusNeedsRevision:
		return to == StatusInProgress
	case StatusGenerationFailed:
		return to == StatusInProgress
	default:
		return false
	}
}

// GeneratedWork records the produced content for one deliverable.
type GeneratedWork struct {
	Content       string
	ImageRef      string
	GeneratedAt   time.Time
	RevisionCount int
	Feedback      string
}

// Deliverable is one concrete creative asset within a campaign.
type Deliverable struct {
	ID              string
	Type            DeliverableType
	Platform        Platform
	Description     string
	TeamMemberIDs   []string
	TeamCost        int
	ProductionCost  int
	Status          DeliverableStatus
	Work            *GeneratedWork
	GenerationError string
}
