package application

import (
	"context"
	"strings"

	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	"criadores/contexts/campaign-ops/slot-service/domain/monthkey"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

// CampaignRef identifies a campaign either directly by ID or by the
// (business, month token) pair accepted at the API boundary.
type CampaignRef struct {
	CampaignID string
	Business   string
	Month      string
}

// ResolveCampaign turns a CampaignRef into the campaign and its business.
// Month tokens are normalized against the clock's current year before
// lookup; an empty token means the current month.
func ResolveCampaign(
	ctx context.Context,
	directory ports.Directory,
	campaigns ports.CampaignRepository,
	clock ports.Clock,
	ref CampaignRef,
) (entities.Campaign, entities.Business, error) {
	if campaignID := strings.TrimSpace(ref.CampaignID); campaignID != "" {
		campaign, err := campaigns.GetCampaign(ctx, campaignID)
		if err != nil {
			return entities.Campaign{}, entities.Business{}, err
		}
		business, err := directory.GetBusiness(ctx, campaign.BusinessID)
		if err != nil {
			return entities.Campaign{}, entities.Business{}, err
		}
		return campaign, business, nil
	}

	business, err := directory.GetBusiness(ctx, strings.TrimSpace(ref.Business))
	if err != nil {
		return entities.Campaign{}, entities.Business{}, err
	}
	now := clock.Now()
	key := monthkey.FromParts(now.Year(), now.Month())
	if strings.TrimSpace(ref.Month) != "" {
		key, err = monthkey.Normalize(ref.Month, now)
		if err != nil {
			return entities.Campaign{}, entities.Business{}, err
		}
	}
	campaign, err := campaigns.GetCampaignByMonth(ctx, business.BusinessID, key)
	if err != nil {
		return entities.Campaign{}, entities.Business{}, err
	}
	return campaign, business, nil
}
