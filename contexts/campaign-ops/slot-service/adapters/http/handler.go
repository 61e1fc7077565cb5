package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"criadores/contexts/campaign-ops/slot-service/application/commands"
	"criadores/contexts/campaign-ops/slot-service/application/queries"
	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	"criadores/contexts/campaign-ops/slot-service/domain/monthkey"
	"criadores/contexts/campaign-ops/slot-service/ports"
	httptransport "criadores/contexts/campaign-ops/slot-service/transport/http"
)

type Handler struct {
	CreateCampaign    commands.CreateCampaignUseCase
	AddCreator        commands.AddCreatorUseCase
	RemoveCreator     commands.RemoveCreatorUseCase
	ReplaceCreator    commands.ReplaceCreatorUseCase
	TransitionStage   commands.TransitionStageUseCase
	FixIntegrity      commands.FixIntegrityUseCase
	GetSlots          queries.GetSlotsUseCase
	StageHistory      queries.StageHistoryUseCase
	ValidateIntegrity queries.ValidateIntegrityUseCase
	Logger            *slog.Logger
}

func (h Handler) GetSlotsHandler(ctx context.Context, business string, month string) (httptransport.GetSlotsResponse, error) {
	view, err := h.GetSlots.Execute(ctx, queries.GetSlotsQuery{
		Business: business,
		Month:    month,
	})
	if err != nil {
		return httptransport.GetSlotsResponse{}, err
	}

	slots := make([]httptransport.SlotDTO, 0, len(view.Slots))
	for _, slot := range view.Slots {
		item := httptransport.SlotDTO{
			Index:  slot.Index,
			Filled: slot.Filled,
		}
		if slot.Assignment != nil {
			item.AssignmentID = slot.Assignment.AssignmentID
			item.CreatorID = slot.Assignment.CreatorID
			item.Role = string(slot.Assignment.Role)
			item.Status = string(slot.Assignment.Status)
			item.PostURL = slot.Assignment.Production.PostURL
		}
		slots = append(slots, item)
	}
	return httptransport.GetSlotsResponse{
		Business: view.Business.Name,
		Campaign: mapCampaign(view.Campaign),
		Slots:    slots,
	}, nil
}

func (h Handler) AddCreatorHandler(ctx context.Context, req httptransport.AddCreatorRequest) (httptransport.MutationResponse, error) {
	result, err := h.AddCreator.Execute(ctx, commands.AddCreatorCommand{
		CampaignID: req.CampaignID,
		Business:   req.Business,
		Month:      req.Month,
		CreatorRef: req.CreatorID,
		Role:       entities.AssignmentRole(req.Role),
		ActorEmail: req.Actor,
	})
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	return mutationResponse("creator added", result), nil
}

func (h Handler) RemoveCreatorHandler(ctx context.Context, req httptransport.RemoveCreatorRequest) (httptransport.MutationResponse, error) {
	result, err := h.RemoveCreator.Execute(ctx, commands.RemoveCreatorCommand{
		CampaignID: req.CampaignID,
		Business:   req.Business,
		Month:      req.Month,
		CreatorRef: req.CreatorID,
		HardDelete: req.HardDelete,
		ActorEmail: req.Actor,
	})
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	return mutationResponse("creator removed", result), nil
}

func (h Handler) ReplaceCreatorHandler(ctx context.Context, req httptransport.ReplaceCreatorRequest) (httptransport.MutationResponse, error) {
	result, err := h.ReplaceCreator.Execute(ctx, commands.ReplaceCreatorCommand{
		CampaignID:    req.CampaignID,
		Business:      req.Business,
		Month:         req.Month,
		OldCreatorRef: req.OldCreatorID,
		NewCreatorRef: req.NewCreatorID,
		ActorEmail:    req.Actor,
	})
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	return mutationResponse("creator replaced", result), nil
}

func (h Handler) TransitionStageHandler(ctx context.Context, req httptransport.TransitionRequest) (httptransport.TransitionResponse, error) {
	result, err := h.TransitionStage.Execute(ctx, commands.TransitionStageCommand{
		CampaignID: req.CampaignID,
		Business:   req.Business,
		Month:      req.Month,
		From:       entities.PipelineStage(req.From),
		To:         entities.PipelineStage(req.To),
		ActorEmail: req.Actor,
		Details:    req.Details,
	})
	if err != nil {
		return httptransport.TransitionResponse{}, err
	}

	message := "stage transitioned"
	if !result.Applied {
		message = "already at target stage"
	}
	return httptransport.TransitionResponse{
		Success:      true,
		Message:      message,
		Applied:      result.Applied,
		Stage:        string(result.Stage),
		AuditEntryID: result.AuditEntryID,
	}, nil
}

func (h Handler) CreateCampaignHandler(ctx context.Context, req httptransport.CreateCampaignRequest) (httptransport.CreateCampaignResponse, error) {
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		Business:           req.Business,
		Month:              req.Month,
		Title:              req.Title,
		Description:        req.Description,
		ContractedCreators: req.ContractedCreators,
		ActorEmail:         req.Actor,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{
		Success:  true,
		Message:  "campaign created",
		Campaign: mapCampaign(campaign),
	}, nil
}

func (h Handler) HistoryHandler(ctx context.Context, campaignID string, limit int) (httptransport.HistoryResponse, error) {
	entries, err := h.StageHistory.Execute(ctx, queries.StageHistoryQuery{
		EntityType: entities.EntityCampaign,
		EntityID:   campaignID,
		Limit:      limit,
	})
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}

	stage, err := h.StageHistory.CurrentStage(ctx, entities.EntityCampaign, campaignID)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}

	items := make([]httptransport.AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.AuditEntryDTO{
			EntryID:    entry.EntryID,
			Action:     string(entry.Action),
			EntityType: string(entry.EntityType),
			EntityID:   entry.EntityID,
			EntityName: entry.EntityName,
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			Actor:      entry.ActorEmail,
			Details:    entry.Details,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return httptransport.HistoryResponse{
		CurrentStage: string(stage),
		Items:        items,
	}, nil
}

func (h Handler) ValidateIntegrityHandler(ctx context.Context) (httptransport.ValidateIntegrityResponse, error) {
	report, err := h.ValidateIntegrity.Execute(ctx)
	if err != nil {
		return httptransport.ValidateIntegrityResponse{}, err
	}

	mismatches := make([]httptransport.MismatchDTO, 0, len(report.Mismatches))
	for _, item := range report.Mismatches {
		mismatches = append(mismatches, httptransport.MismatchDTO{
			CampaignID: item.CampaignID,
			Expected:   item.Expected,
			Actual:     item.Actual,
			Delta:      item.Delta,
		})
	}
	return httptransport.ValidateIntegrityResponse{
		CampaignsChecked: report.CampaignsChecked,
		Mismatches:       mismatches,
	}, nil
}

func (h Handler) FixIntegrityHandler(ctx context.Context, req httptransport.FixIntegrityRequest) (httptransport.FixIntegrityResponse, error) {
	results, err := h.FixIntegrity.Execute(ctx, commands.FixIntegrityCommand{
		CampaignID: req.CampaignID,
		ActorEmail: req.Actor,
	})
	if err != nil {
		return httptransport.FixIntegrityResponse{}, err
	}

	repaired := 0
	items := make([]httptransport.RecountDTO, 0, len(results))
	for _, result := range results {
		if result.Changed {
			repaired++
		}
		items = append(items, httptransport.RecountDTO{
			CampaignID: result.CampaignID,
			Previous:   result.Previous,
			Expected:   result.Expected,
			Changed:    result.Changed,
		})
	}
	return httptransport.FixIntegrityResponse{
		Success:  true,
		Message:  fmt.Sprintf("%d campaign(s) repaired", repaired),
		Repaired: repaired,
		Results:  items,
	}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	label := ""
	if len(item.MonthKey) == 6 {
		label = monthkey.Key(item.MonthKey).Label()
	}
	return httptransport.CampaignDTO{
		CampaignID:         item.CampaignID,
		BusinessID:         item.BusinessID,
		MonthKey:           item.MonthKey,
		MonthLabel:         label,
		Title:              item.Title,
		Description:        item.Description,
		ContractedCreators: item.ContractedCreators,
		AssignedCreators:   item.AssignedCreators,
		Stage:              string(item.Stage),
	}
}

func mutationResponse(message string, result ports.MutationResult) httptransport.MutationResponse {
	return httptransport.MutationResponse{
		Success:          true,
		Message:          message,
		CampaignID:       result.CampaignID,
		AssignedCreators: result.AssignedCreators,
		AuditEntryID:     result.AuditEntryID,
	}
}
