package slotservice

import (
	"log/slog"

	httpadapter "criadores/contexts/campaign-ops/slot-service/adapters/http"
	"criadores/contexts/campaign-ops/slot-service/adapters/memory"
	"criadores/contexts/campaign-ops/slot-service/application/commands"
	"criadores/contexts/campaign-ops/slot-service/application/queries"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Directory   ports.Directory
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Stages      ports.StageRepository
	Audit       ports.AuditLogRepository
	Integrity   ports.IntegrityRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Directory: deps.Directory,
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	addCreator := commands.AddCreatorUseCase{
		Directory:   deps.Directory,
		Campaigns:   deps.Campaigns,
		Assignments: deps.Assignments,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	removeCreator := commands.RemoveCreatorUseCase{
		Directory:   deps.Directory,
		Campaigns:   deps.Campaigns,
		Assignments: deps.Assignments,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	replaceCreator := commands.ReplaceCreatorUseCase{
		Directory:   deps.Directory,
		Campaigns:   deps.Campaigns,
		Assignments: deps.Assignments,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	transitionStage := commands.TransitionStageUseCase{
		Directory: deps.Directory,
		Campaigns: deps.Campaigns,
		Stages:    deps.Stages,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	fixIntegrity := commands.FixIntegrityUseCase{
		Campaigns: deps.Campaigns,
		Integrity: deps.Integrity,
		Logger:    deps.Logger,
	}

	getSlots := queries.GetSlotsUseCase{
		Directory:   deps.Directory,
		Campaigns:   deps.Campaigns,
		Assignments: deps.Assignments,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	stageHistory := queries.StageHistoryUseCase{
		Audit:  deps.Audit,
		Logger: deps.Logger,
	}
	validateIntegrity := queries.ValidateIntegrityUseCase{
		Campaigns: deps.Campaigns,
		Integrity: deps.Integrity,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign:    createCampaign,
			AddCreator:        addCreator,
			RemoveCreator:     removeCreator,
			ReplaceCreator:    replaceCreator,
			TransitionStage:   transitionStage,
			FixIntegrity:      fixIntegrity,
			GetSlots:          getSlots,
			StageHistory:      stageHistory,
			ValidateIntegrity: validateIntegrity,
			Logger:            deps.Logger,
		},
	}
}

func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Directory:   store,
		Campaigns:   store,
		Assignments: store,
		Stages:      store,
		Audit:       store,
		Integrity:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
