package commands

import (
	"context"
	"log/slog"
	"strings"

	application "criadores/contexts/campaign-ops/slot-service/application"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type ReplaceCreatorCommand struct {
	CampaignID    string
	Business      string
	Month         string
	OldCreatorRef string
	NewCreatorRef string
	ActorEmail    string
}

type ReplaceCreatorUseCase struct {
	Directory   ports.Directory
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute substitutes one creator for another as a single atomic unit with a
// single creator_changed audit entry, so history shows the substitution as
// one event rather than a removal plus an addition.
func (uc ReplaceCreatorUseCase) Execute(ctx context.Context, cmd ReplaceCreatorCommand) (ports.MutationResult, error) {
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
	oldCreator, err := uc.Directory.GetCreator(ctx, strings.TrimSpace(cmd.OldCreatorRef))
	if err != nil {
		return ports.MutationResult{}, err
	}
	newCreator, err := uc.Directory.GetCreator(ctx, strings.TrimSpace(cmd.NewCreatorRef))
	if err != nil {
		return ports.MutationResult{}, err
	}
	if oldCreator.CreatorID == newCreator.CreatorID {
		return ports.MutationResult{}, domainerrors.ErrInvalidInput
	}

	result, err := uc.Assignments.ReplaceCreator(ctx, ports.ReplaceChange{
		CampaignID:     campaign.CampaignID,
		OldCreatorID:   oldCreator.CreatorID,
		NewCreatorID:   newCreator.CreatorID,
		NewCreatorName: newCreator.Name,
		ActorEmail:     strings.TrimSpace(cmd.ActorEmail),
		Details:        "creator " + oldCreator.Name + " replaced by " + newCreator.Name + " on " + campaign.Title,
	})
	if err != nil {
		return ports.MutationResult{}, err
	}

	logger.Info("creator replaced on campaign",
		"event", "campaign_creator_replaced",
		"module", "campaign-ops/slot-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"old_creator_id", oldCreator.CreatorID,
		"new_creator_id", newCreator.CreatorID,
		"assigned_creators", result.AssignedCreators,
	)
	return result, nil
}
