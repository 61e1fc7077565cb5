package commands

import (
	"context"
	"log/slog"
	"strings"

	application "criadores/contexts/campaign-ops/slot-service/application"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type FixIntegrityCommand struct {
	// CampaignID limits the repair to one campaign; empty repairs every
	// active campaign that drifted.
	CampaignID string
	ActorEmail string
}

type FixIntegrityUseCase struct {
	Campaigns ports.CampaignRepository
	Integrity ports.IntegrityRepository
	Logger    *slog.Logger
}

// Execute re-derives and persists assigned counts. It uses the same
// recomputation the mutator uses after every write, so the two paths cannot
// disagree, and running it twice leaves the same end state as running it
// once.
func (uc FixIntegrityUseCase) Execute(ctx context.Context, cmd FixIntegrityCommand) ([]ports.RecountResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor := strings.TrimSpace(cmd.ActorEmail)
	if actor == "" {
		actor = "integrity-auditor"
	}

	var targets []string
	if campaignID := strings.TrimSpace(cmd.CampaignID); campaignID != "" {
		if _, err := uc.Campaigns.GetCampaign(ctx, campaignID); err != nil {
			return nil, err
		}
		targets = []string{campaignID}
	} else {
		campaigns, err := uc.Campaigns.ListActiveCampaigns(ctx)
		if err != nil {
			return nil, err
		}
		for _, campaign := range campaigns {
			targets = append(targets, campaign.CampaignID)
		}
	}

	results := make([]ports.RecountResult, 0, len(targets))
	for _, campaignID := range targets {
		result, err := uc.Integrity.RepairAssignedCount(ctx, campaignID, actor)
		if err != nil {
			return results, err
		}
		if result.Changed {
			logger.Warn("assigned count repaired",
				"event", "assigned_count_repaired",
				"module", "campaign-ops/slot-service",
				"layer", "application",
				"campaign_id", result.CampaignID,
				"previous", result.Previous,
				"expected", result.Expected,
			)
		}
		results = append(results, result)
	}
	return results, nil
}
