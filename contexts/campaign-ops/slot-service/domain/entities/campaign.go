package entities

import (
	"strings"
	"time"
)

type PipelineStage string

const (
	StageBriefing      PipelineStage = "briefing"
	StageScheduling    PipelineStage = "scheduling"
	StageFinalDelivery PipelineStage = "final_delivery"
	StageCompleted     PipelineStage = "completed"
	StageDeclined      PipelineStage = "declined"
)

// Campaign is one business's engagement for one calendar month.
// MonthKey is the canonical YYYYMM key; (BusinessID, MonthKey) is unique
// among active campaigns. AssignedCreators and Stage are caches: the
// assignment set and the audit log stay authoritative, and both columns are
// written only inside the same transaction as the authoritative change.
type Campaign struct {
	CampaignID         string
	BusinessID         string
	MonthKey           string
	Title              string
	Description        string
	ContractedCreators int
	AssignedCreators   int
	Stage              PipelineStage
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (c Campaign) ValidateBasics() bool {
	title := strings.TrimSpace(c.Title)
	return strings.TrimSpace(c.BusinessID) != "" &&
		len(c.MonthKey) == 6 &&
		title != "" &&
		len(title) <= 200 &&
		c.ContractedCreators >= 0 &&
		c.ContractedCreators <= 100
}

func IsKnownStage(value PipelineStage) bool {
	switch value {
	case StageBriefing, StageScheduling, StageFinalDelivery, StageCompleted, StageDeclined:
		return true
	default:
		return false
	}
}

// Business is a local business enrolled on the platform. Businesses carry
// their own pipeline stage independent of any single campaign.
type Business struct {
	BusinessID string
	Name       string
	City       string
	OwnerEmail string
	Stage      PipelineStage
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Creator is a content creator available for campaign slots.
type Creator struct {
	CreatorID string
	Name      string
	Instagram string
	City      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
