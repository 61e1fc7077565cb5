package commands

import (
	"context"
	"log/slog"
	"strings"

	application "criadores/contexts/campaign-ops/slot-service/application"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type RemoveCreatorCommand struct {
	CampaignID string
	Business   string
	Month      string
	CreatorRef string
	HardDelete bool
	ActorEmail string
}

type RemoveCreatorUseCase struct {
	Directory   ports.Directory
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc RemoveCreatorUseCase) Execute(ctx context.Context, cmd RemoveCreatorCommand) (ports.MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorEmail) == "" {
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

	result, err := uc.Assignments.RemoveCreator(ctx, ports.AssignmentChange{
		CampaignID:  campaign.CampaignID,
		CreatorID:   creator.CreatorID,
		CreatorName: creator.Name,
		HardDelete:  cmd.HardDelete,
		ActorEmail:  strings.TrimSpace(cmd.ActorEmail),
		Details:     "creator " + creator.Name + " removed from " + campaign.Title,
	})
	if err != nil {
		return ports.MutationResult{}, err
	}

	logger.Info("creator removed from campaign",
		"event", "campaign_creator_removed",
		"module", "campaign-ops/slot-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"creator_id", creator.CreatorID,
		"hard_delete", cmd.HardDelete,
		"assigned_creators", result.AssignedCreators,
	)
	return result, nil
}
