package commands

import (
	"context"
	"log/slog"
	"strings"

	application "criadores/contexts/campaign-ops/slot-service/application"
	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/domain/monthkey"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type CreateCampaignCommand struct {
	Business           string
	Month              string
	Title              string
	Description        string
	ContractedCreators int
	ActorEmail         string
}

type CreateCampaignUseCase struct {
	Directory ports.Directory
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorEmail) == "" {
		return entities.Campaign{}, domainerrors.ErrInvalidInput
	}

	business, err := uc.Directory.GetBusiness(ctx, strings.TrimSpace(cmd.Business))
	if err != nil {
		return entities.Campaign{}, err
	}
	key, err := monthkey.Normalize(cmd.Month, uc.Clock.Now())
	if err != nil {
		return entities.Campaign{}, err
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = business.Name + " - " + key.Label()
	}
	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}

	now := uc.Clock.Now().UTC()
	campaign := entities.Campaign{
		CampaignID:         campaignID,
		BusinessID:         business.BusinessID,
		MonthKey:           key.String(),
		Title:              title,
		Description:        strings.TrimSpace(cmd.Description),
		ContractedCreators: cmd.ContractedCreators,
		AssignedCreators:   0,
		Stage:              entities.StageBriefing,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidInput
	}
	if err := uc.Campaigns.CreateCampaign(ctx, campaign, strings.TrimSpace(cmd.ActorEmail)); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "campaign-ops/slot-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"business_id", business.BusinessID,
		"month_key", campaign.MonthKey,
		"contracted_creators", campaign.ContractedCreators,
	)
	return campaign, nil
}
