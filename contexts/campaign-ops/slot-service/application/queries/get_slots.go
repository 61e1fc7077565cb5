package queries

import (
	"context"
	"log/slog"

	application "criadores/contexts/campaign-ops/slot-service/application"
	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type GetSlotsQuery struct {
	Business string
	Month    string
}

type SlotsView struct {
	Business entities.Business
	Campaign entities.Campaign
	Slots    []entities.Slot
}

type GetSlotsUseCase struct {
	Directory   ports.Directory
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute is the pure-read slot view: active assignments placed into the
// first positions, padded out to the contracted quantity. A campaign with no
// assignments yields contracted-many empty slots, not an error.
func (uc GetSlotsUseCase) Execute(ctx context.Context, query GetSlotsQuery) (SlotsView, error) {
	campaign, business, err := application.ResolveCampaign(ctx, uc.Directory, uc.Campaigns, uc.Clock, application.CampaignRef{
		Business: query.Business,
		Month:    query.Month,
	})
	if err != nil {
		return SlotsView{}, err
	}

	active, err := uc.Assignments.ListActiveAssignments(ctx, campaign.CampaignID)
	if err != nil {
		return SlotsView{}, err
	}

	return SlotsView{
		Business: business,
		Campaign: campaign,
		Slots:    entities.BuildSlots(campaign.ContractedCreators, active),
	}, nil
}
