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

type AddCreatorCommand struct {
	CampaignID string
	Business   string
	Month      string
	CreatorRef string
	Role       entities.AssignmentRole
	ActorEmail string
}

type AddCreatorUseCase struct {
	Directory   ports.Directory
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc AddCreatorUseCase) Execute(ctx context.Context, cmd AddCreatorCommand) (ports.MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorEmail) == "" {
		return ports.MutationResult{}, domainerrors.ErrInvalidInput
	}
	role := cmd.Role
	if role == "" {
		role = entities.RolePrimary
	}
	if !entities.IsKnownRole(role) {
		return ports.MutationResult{}, domainerrors.ErrInvalidInput
	}

	campaign, _, err := application.ResolveCampaign(ctx, uc.Directory, uc.Campaigns, uc.Clock, application.CampaignRef{
		CampaignID: cmd.CampaignID,
		Business:   cmd.Business,
		Month:      cmd.Month,
	})
	if err != nil {
		return ports.MutationResult{}, err
	}
	creator, err := uc.Directory.GetCreator(ctx, strings.TrimSpace(cmd.CreatorRef))
	if err != nil {
		return ports.MutationResult{}, err
	}

	result, err := uc.Assignments.AddCreator(ctx, ports.AssignmentChange{
		CampaignID:  campaign.CampaignID,
		CreatorID:   creator.CreatorID,
		CreatorName: creator.Name,
		Role:        role,
		ActorEmail:  strings.TrimSpace(cmd.ActorEmail),
		Details:     "creator " + creator.Name + " added to " + campaign.Title,
	})
	if err != nil {
		return ports.MutationResult{}, err
	}

	logger.Info("creator added to campaign",
		"event", "campaign_creator_added",
		"module", "campaign-ops/slot-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"creator_id", creator.CreatorID,
		"assigned_creators", result.AssignedCreators,
	)
	return result, nil
}
