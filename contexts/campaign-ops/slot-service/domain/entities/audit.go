package entities

import "time"

type AuditAction string
type EntityType string

const (
	ActionCreatorAdded          AuditAction = "creator_added"
	ActionCreatorRemoved        AuditAction = "creator_removed"
	ActionCreatorChanged        AuditAction = "creator_changed"
	ActionCampaignStatusChanged AuditAction = "campaign_status_changed"
	ActionBusinessStageChanged  AuditAction = "business_stage_changed"
	ActionCampaignCreated       AuditAction = "campaign_created"
	ActionCountRepaired         AuditAction = "assigned_count_repaired"

	EntityCampaign EntityType = "campaign"
	EntityBusiness EntityType = "business"
)

// AuditEntry is one immutable record of a state change. The log is
// append-only: entries are never updated or deleted, and the current stage
// of a campaign or business is defined as the NewValue of its most recent
// stage-change entry.
type AuditEntry struct {
	EntryID    string
	Action     AuditAction
	EntityType EntityType
	EntityID   string
	EntityName string
	OldValue   string
	NewValue   string
	ActorEmail string
	Details    string
	CreatedAt  time.Time
}

func IsStageChange(action AuditAction) bool {
	return action == ActionCampaignStatusChanged || action == ActionBusinessStageChanged
}
