package ports

import (
	"context"
	"time"

	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	"criadores/contexts/campaign-ops/slot-service/domain/monthkey"
	contractsv1 "criadores/contracts/gen/events/v1"
)

type Directory interface {
	// GetBusiness resolves by identifier or, failing that, by exact
	// case-insensitive name.
	GetBusiness(ctx context.Context, ref string) (entities.Business, error)
	GetCreator(ctx context.Context, ref string) (entities.Creator, error)
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign, actorEmail string) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	GetCampaignByMonth(ctx context.Context, businessID string, month monthkey.Key) (entities.Campaign, error)
	ListActiveCampaigns(ctx context.Context) ([]entities.Campaign, error)
}

// AssignmentChange describes one add or remove mutation. The repository
// executes the whole mutation as one transaction: assignment write, count
// recount, audit append and outbox insert all commit or roll back together.
type AssignmentChange struct {
	CampaignID  string
	CreatorID   string
	CreatorName string
	Role        entities.AssignmentRole
	HardDelete  bool
	ActorEmail  string
	Details     string
}

type ReplaceChange struct {
	CampaignID     string
	OldCreatorID   string
	NewCreatorID   string
	NewCreatorName string
	ActorEmail     string
	Details        string
}

type MutationResult struct {
	CampaignID       string
	AssignedCreators int
	AuditEntryID     string
}

type AssignmentRepository interface {
	ListActiveAssignments(ctx context.Context, campaignID string) ([]entities.Assignment, error)
	AddCreator(ctx context.Context, change AssignmentChange) (MutationResult, error)
	RemoveCreator(ctx context.Context, change AssignmentChange) (MutationResult, error)
	ReplaceCreator(ctx context.Context, change ReplaceChange) (MutationResult, error)
}

type StageChange struct {
	EntityType entities.EntityType
	EntityID   string
	EntityName string
	From       entities.PipelineStage
	To         entities.PipelineStage
	ActorEmail string
	Details    string
}

// StageResult reports what the transition did. Applied is false when the
// entity was already at the target stage and the call was a no-op.
type StageResult struct {
	Applied      bool
	AuditEntryID string
	Stage        entities.PipelineStage
}

type StageRepository interface {
	// TransitionStage validates the expected From stage against the
	// current stage under lock, appends the audit entry and refreshes the
	// cached stage column in one transaction.
	TransitionStage(ctx context.Context, change StageChange) (StageResult, error)
}

type AuditFilter struct {
	EntityType entities.EntityType
	EntityID   string
	Limit      int
}

type AuditLogRepository interface {
	ListAuditEntries(ctx context.Context, filter AuditFilter) ([]entities.AuditEntry, error)
}

type RecountResult struct {
	CampaignID string
	Previous   int
	Expected   int
	Changed    bool
}

type IntegrityRepository interface {
	CountActiveAssignments(ctx context.Context, campaignID string) (int, error)
	// RepairAssignedCount re-derives the count and persists it when it
	// drifted, appending an audit entry. Safe to call repeatedly.
	RepairAssignedCount(ctx context.Context, campaignID string, actorEmail string) (RecountResult, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
