package commands

import (
	"context"
	"log/slog"
	"strings"

	application "criadores/contexts/campaign-ops/slot-service/application"
	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type TransitionStageCommand struct {
	CampaignID string
	Business   string
	Month      string
	From       entities.PipelineStage
	To         entities.PipelineStage
	ActorEmail string
	Details    string
}

type TransitionStageUseCase struct {
	Directory ports.Directory
	Campaigns ports.CampaignRepository
	Stages    ports.StageRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Execute records one validated stage transition. A month token (or campaign
// ID) targets the campaign; without one the business itself transitions.
// From == To short-circuits as a no-op so repeated calls never append
// duplicate audit entries.
func (uc TransitionStageUseCase) Execute(ctx context.Context, cmd TransitionStageCommand) (ports.StageResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.IsKnownStage(cmd.From) || !entities.IsKnownStage(cmd.To) {
		return ports.StageResult{}, domainerrors.ErrInvalidStage
	}
	if strings.TrimSpace(cmd.ActorEmail) == "" {
		return ports.StageResult{}, domainerrors.ErrInvalidInput
	}
	if cmd.From == cmd.To {
		return ports.StageResult{Applied: false, Stage: cmd.To}, nil
	}

	change := ports.StageChange{
		From:       cmd.From,
		To:         cmd.To,
		ActorEmail: strings.TrimSpace(cmd.ActorEmail),
		Details:    strings.TrimSpace(cmd.Details),
	}
	if strings.TrimSpace(cmd.CampaignID) != "" || strings.TrimSpace(cmd.Month) != "" {
		campaign, _, err := application.ResolveCampaign(ctx, uc.Directory, uc.Campaigns, uc.Clock, application.CampaignRef{
			CampaignID: cmd.CampaignID,
			Business:   cmd.Business,
			Month:      cmd.Month,
		})
		if err != nil {
			return ports.StageResult{}, err
		}
		change.EntityType = entities.EntityCampaign
		change.EntityID = campaign.CampaignID
		change.EntityName = campaign.Title
	} else {
		business, err := uc.Directory.GetBusiness(ctx, strings.TrimSpace(cmd.Business))
		if err != nil {
			return ports.StageResult{}, err
		}
		change.EntityType = entities.EntityBusiness
		change.EntityID = business.BusinessID
		change.EntityName = business.Name
	}

	result, err := uc.Stages.TransitionStage(ctx, change)
	if err != nil {
		return ports.StageResult{}, err
	}

	logger.Info("pipeline stage transitioned",
		"event", "pipeline_stage_transitioned",
		"module", "campaign-ops/slot-service",
		"layer", "application",
		"entity_type", string(change.EntityType),
		"entity_id", change.EntityID,
		"from_stage", string(cmd.From),
		"to_stage", string(cmd.To),
		"applied", result.Applied,
	)
	return result, nil
}
