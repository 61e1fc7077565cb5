package queries

import (
	"context"
	"log/slog"
	"strings"

	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type StageHistoryQuery struct {
	EntityType entities.EntityType
	EntityID   string
	Limit      int
}

type StageHistoryUseCase struct {
	Audit  ports.AuditLogRepository
	Logger *slog.Logger
}

func (uc StageHistoryUseCase) Execute(ctx context.Context, query StageHistoryQuery) ([]entities.AuditEntry, error) {
	if strings.TrimSpace(query.EntityID) == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	return uc.Audit.ListAuditEntries(ctx, ports.AuditFilter{
		EntityType: query.EntityType,
		EntityID:   strings.TrimSpace(query.EntityID),
		Limit:      query.Limit,
	})
}

// CurrentStage derives the stage from the audit log: the NewValue of the
// most recent stage-change entry for the entity. The denormalized stage
// column on campaigns and businesses is only a cache of this value;
// entities with no stage entries yet are at briefing.
func (uc StageHistoryUseCase) CurrentStage(
	ctx context.Context,
	entityType entities.EntityType,
	entityID string,
) (entities.PipelineStage, error) {
	entries, err := uc.Audit.ListAuditEntries(ctx, ports.AuditFilter{
		EntityType: entityType,
		EntityID:   strings.TrimSpace(entityID),
	})
	if err != nil {
		return "", err
	}
	// Entries come back newest first.
	for _, entry := range entries {
		if entities.IsStageChange(entry.Action) {
			return entities.PipelineStage(entry.NewValue), nil
		}
	}
	return entities.StageBriefing, nil
}
