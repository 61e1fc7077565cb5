package queries

import (
	"context"
	"log/slog"

	application "criadores/contexts/campaign-ops/slot-service/application"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type CountMismatch struct {
	CampaignID string
	Expected   int
	Actual     int
	Delta      int
}

type IntegrityReport struct {
	CampaignsChecked int
	Mismatches       []CountMismatch
}

type ValidateIntegrityUseCase struct {
	Campaigns ports.CampaignRepository
	Integrity ports.IntegrityRepository
	Logger    *slog.Logger
}

// Execute scans every active campaign and compares the persisted assigned
// count against a fresh count of the active assignment set. Pure read; the
// fix command is the only remediation path.
func (uc ValidateIntegrityUseCase) Execute(ctx context.Context) (IntegrityReport, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaigns, err := uc.Campaigns.ListActiveCampaigns(ctx)
	if err != nil {
		return IntegrityReport{}, err
	}

	report := IntegrityReport{
		CampaignsChecked: len(campaigns),
		Mismatches:       make([]CountMismatch, 0),
	}
	for _, campaign := range campaigns {
		expected, err := uc.Integrity.CountActiveAssignments(ctx, campaign.CampaignID)
		if err != nil {
			return IntegrityReport{}, err
		}
		if expected != campaign.AssignedCreators {
			report.Mismatches = append(report.Mismatches, CountMismatch{
				CampaignID: campaign.CampaignID,
				Expected:   expected,
				Actual:     campaign.AssignedCreators,
				Delta:      campaign.AssignedCreators - expected,
			})
		}
	}

	if len(report.Mismatches) > 0 {
		logger.Warn("assigned count drift detected",
			"event", "assigned_count_drift_detected",
			"module", "campaign-ops/slot-service",
			"layer", "application",
			"campaigns_checked", report.CampaignsChecked,
			"mismatches", len(report.Mismatches),
		)
	}
	return report, nil
}
