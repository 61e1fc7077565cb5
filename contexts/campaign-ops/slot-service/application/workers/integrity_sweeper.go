package workers

import (
	"context"
	"log/slog"

	application "criadores/contexts/campaign-ops/slot-service/application"
	"criadores/contexts/campaign-ops/slot-service/application/commands"
	"criadores/contexts/campaign-ops/slot-service/application/queries"
)

// IntegritySweeper runs the validate-then-fix reconciliation pass. It is
// safe to run repeatedly; a pass that finds no drift changes nothing.
type IntegritySweeper struct {
	Validate queries.ValidateIntegrityUseCase
	Fix      commands.FixIntegrityUseCase
	Logger   *slog.Logger
}

func (s IntegritySweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)

	report, err := s.Validate.Execute(ctx)
	if err != nil {
		return err
	}
	if len(report.Mismatches) == 0 {
		return nil
	}

	for _, mismatch := range report.Mismatches {
		if _, err := s.Fix.Execute(ctx, commands.FixIntegrityCommand{
			CampaignID: mismatch.CampaignID,
			ActorEmail: "integrity-sweeper",
		}); err != nil {
			logger.Error("integrity fix failed",
				"event", "integrity_fix_failed",
				"module", "campaign-ops/slot-service",
				"layer", "worker",
				"campaign_id", mismatch.CampaignID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("integrity sweep repaired drift",
		"event", "integrity_sweep_completed",
		"module", "campaign-ops/slot-service",
		"layer", "worker",
		"campaigns_checked", report.CampaignsChecked,
		"repaired", len(report.Mismatches),
	)
	return nil
}
