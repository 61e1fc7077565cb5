package postgresadapter

import (
	"strings"
	"time"

	"criadores/contexts/campaign-ops/slot-service/domain/entities"
)

type businessModel struct {
	BusinessID string    `gorm:"column:business_id;primaryKey"`
	Name       string    `gorm:"column:name"`
	City       string    `gorm:"column:city"`
	OwnerEmail string    `gorm:"column:owner_email"`
	Stage      string    `gorm:"column:stage"`
	Active     bool      `gorm:"column:active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (businessModel) TableName() string {
	return "businesses"
}

func (m businessModel) toEntity() entities.Business {
	return entities.Business{
		BusinessID: m.BusinessID,
		Name:       m.Name,
		City:       m.City,
		OwnerEmail: m.OwnerEmail,
		Stage:      entities.PipelineStage(m.Stage),
		Active:     m.Active,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type creatorModel struct {
	CreatorID string    `gorm:"column:creator_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Instagram string    `gorm:"column:instagram"`
	City      string    `gorm:"column:city"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (creatorModel) TableName() string {
	return "creators"
}

func (m creatorModel) toEntity() entities.Creator {
	return entities.Creator{
		CreatorID: m.CreatorID,
		Name:      m.Name,
		Instagram: m.Instagram,
		City:      m.City,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type campaignModel struct {
	CampaignID         string    `gorm:"column:campaign_id;primaryKey"`
	BusinessID         string    `gorm:"column:business_id;uniqueIndex:idx_campaigns_business_month,where:active"`
	MonthKey           string    `gorm:"column:month_key;uniqueIndex:idx_campaigns_business_month,where:active"`
	Title              string    `gorm:"column:title"`
	Description        string    `gorm:"column:description"`
	ContractedCreators int       `gorm:"column:contracted_creators"`
	AssignedCreators   int       `gorm:"column:assigned_creators"`
	Stage              string    `gorm:"column:stage"`
	Active             bool      `gorm:"column:active"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:         strings.TrimSpace(item.CampaignID),
		BusinessID:         strings.TrimSpace(item.BusinessID),
		MonthKey:           item.MonthKey,
		Title:              strings.TrimSpace(item.Title),
		Description:        strings.TrimSpace(item.Description),
		ContractedCreators: item.ContractedCreators,
		AssignedCreators:   item.AssignedCreators,
		Stage:              string(item.Stage),
		Active:             item.Active,
		CreatedAt:          item.CreatedAt.UTC(),
		UpdatedAt:          item.UpdatedAt.UTC(),
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:         m.CampaignID,
		BusinessID:         m.BusinessID,
		MonthKey:           m.MonthKey,
		Title:              m.Title,
		Description:        m.Description,
		ContractedCreators: m.ContractedCreators,
		AssignedCreators:   m.AssignedCreators,
		Stage:              entities.PipelineStage(m.Stage),
		Active:             m.Active,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

type assignmentModel struct {
	AssignmentID     string     `gorm:"column:assignment_id;primaryKey"`
	CampaignID       string     `gorm:"column:campaign_id;index"`
	CreatorID        string     `gorm:"column:creator_id;index"`
	Role             string     `gorm:"column:role"`
	Status           string     `gorm:"column:status"`
	BriefingSentAt   *time.Time `gorm:"column:briefing_sent_at"`
	VisitConfirmedAt *time.Time `gorm:"column:visit_confirmed_at"`
	PostURL          string     `gorm:"column:post_url"`
	Notes            string     `gorm:"column:notes"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (assignmentModel) TableName() string {
	return "campaign_assignments"
}

func (m assignmentModel) toEntity() entities.Assignment {
	return entities.Assignment{
		AssignmentID: m.AssignmentID,
		CampaignID:   m.CampaignID,
		CreatorID:    m.CreatorID,
		Role:         entities.AssignmentRole(m.Role),
		Status:       entities.AssignmentStatus(m.Status),
		Production: entities.ProductionInfo{
			BriefingSentAt:   normalizeOptionalTime(m.BriefingSentAt),
			VisitConfirmedAt: normalizeOptionalTime(m.VisitConfirmedAt),
			PostURL:          m.PostURL,
			Notes:            m.Notes,
		},
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type auditModel struct {
	EntryID    string    `gorm:"column:entry_id;primaryKey"`
	Action     string    `gorm:"column:action"`
	EntityType string    `gorm:"column:entity_type;index:idx_audit_entity"`
	EntityID   string    `gorm:"column:entity_id;index:idx_audit_entity"`
	EntityName string    `gorm:"column:entity_name"`
	OldValue   string    `gorm:"column:old_value"`
	NewValue   string    `gorm:"column:new_value"`
	ActorEmail string    `gorm:"column:actor_email"`
	Details    string    `gorm:"column:details"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (auditModel) TableName() string {
	return "audit_log"
}

func (m auditModel) toEntity() entities.AuditEntry {
	return entities.AuditEntry{
		EntryID:    m.EntryID,
		Action:     entities.AuditAction(m.Action),
		EntityType: entities.EntityType(m.EntityType),
		EntityID:   m.EntityID,
		EntityName: m.EntityName,
		OldValue:   m.OldValue,
		NewValue:   m.NewValue,
		ActorEmail: m.ActorEmail,
		Details:    m.Details,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "campaign_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
