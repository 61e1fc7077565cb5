package postgresadapter

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/ports"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "slots.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seeded := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	rows := []any{
		&businessModel{BusinessID: "biz-1", Name: "Café Aurora", Stage: "briefing", Active: true, CreatedAt: seeded, UpdatedAt: seeded},
		&creatorModel{CreatorID: "cr-1", Name: "Ana Lima", Instagram: "@analima", Active: true, CreatedAt: seeded, UpdatedAt: seeded},
		&creatorModel{CreatorID: "cr-2", Name: "Bruno Reis", Instagram: "@brunoreis", Active: true, CreatedAt: seeded, UpdatedAt: seeded},
		&campaignModel{
			CampaignID:         "camp-1",
			BusinessID:         "biz-1",
			MonthKey:           "202507",
			Title:              "Café Aurora - Julho 2025",
			ContractedCreators: 2,
			Stage:              "briefing",
			Active:             true,
			CreatedAt:          seeded,
			UpdatedAt:          seeded,
		},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed row %T: %v", row, err)
		}
	}
	return NewRepository(db, nil)
}

func campaignRow(t *testing.T, repo *Repository, campaignID string) campaignModel {
	t.Helper()
	var row campaignModel
	if err := repo.db.Where("campaign_id = ?", campaignID).First(&row).Error; err != nil {
		t.Fatalf("load campaign row: %v", err)
	}
	return row
}

func TestAddCreatorRecountsAndLogs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	result, err := repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1",
		CreatorID:  "cr-1",
		Role:       entities.RolePrimary,
		ActorEmail: "ops@criadores.app",
	})
	if err != nil {
		t.Fatalf("add creator: %v", err)
	}
	if result.AssignedCreators != 1 {
		t.Fatalf("expected assigned count 1, got %d", result.AssignedCreators)
	}
	if campaignRow(t, repo, "camp-1").AssignedCreators != 1 {
		t.Fatal("expected cached column to match the recount")
	}

	entries, err := repo.ListAuditEntries(ctx, ports.AuditFilter{EntityType: entities.EntityCampaign, EntityID: "camp-1"})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != entities.ActionCreatorAdded {
		t.Fatalf("expected one creator_added entry, got %+v", entries)
	}

	_, err = repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1",
		CreatorID:  "cr-1",
		Role:       entities.RolePrimary,
		ActorEmail: "ops@criadores.app",
	})
	if !errors.Is(err, domainerrors.ErrCreatorAlreadyAssigned) {
		t.Fatalf("expected ErrCreatorAlreadyAssigned, got %v", err)
	}
}

func TestRemoveCreatorSoftVersusHardDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-1", Role: entities.RolePrimary, ActorEmail: "ops@criadores.app",
	}); err != nil {
		t.Fatalf("add creator: %v", err)
	}

	result, err := repo.RemoveCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-1", ActorEmail: "ops@criadores.app",
	})
	if err != nil {
		t.Fatalf("soft remove: %v", err)
	}
	if result.AssignedCreators != 0 {
		t.Fatalf("expected count 0 after soft remove, got %d", result.AssignedCreators)
	}

	var removed int64
	if err := repo.db.Model(&assignmentModel{}).
		Where("campaign_id = ? AND status = ?", "camp-1", "removed").
		Count(&removed).Error; err != nil {
		t.Fatalf("count removed rows: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected soft-removed row to survive, found %d", removed)
	}

	if _, err := repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-2", Role: entities.RolePrimary, ActorEmail: "ops@criadores.app",
	}); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if _, err := repo.RemoveCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-2", HardDelete: true, ActorEmail: "ops@criadores.app",
	}); err != nil {
		t.Fatalf("hard remove: %v", err)
	}

	var total int64
	if err := repo.db.Model(&assignmentModel{}).
		Where("campaign_id = ? AND creator_id = ?", "camp-1", "cr-2").
		Count(&total).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected hard delete to drop the row, found %d", total)
	}
}

func TestReplaceCreatorWritesOneChangeEntry(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-1", Role: entities.RolePrimary, ActorEmail: "ops@criadores.app",
	}); err != nil {
		t.Fatalf("add creator: %v", err)
	}

	result, err := repo.ReplaceCreator(ctx, ports.ReplaceChange{
		CampaignID:   "camp-1",
		OldCreatorID: "cr-1",
		NewCreatorID: "cr-2",
		ActorEmail:   "ops@criadores.app",
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if result.AssignedCreators != 1 {
		t.Fatalf("expected count to stay 1 across a swap, got %d", result.AssignedCreators)
	}

	active, err := repo.ListActiveAssignments(ctx, "camp-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].CreatorID != "cr-2" {
		t.Fatalf("expected cr-2 as the only active assignment, got %+v", active)
	}

	entries, err := repo.ListAuditEntries(ctx, ports.AuditFilter{EntityType: entities.EntityCampaign, EntityID: "camp-1"})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	changed := 0
	for _, entry := range entries {
		if entry.Action == entities.ActionCreatorChanged {
			changed++
		}
		if entry.Action == entities.ActionCreatorRemoved {
			t.Fatalf("swap must not log a separate removal, got %+v", entry)
		}
	}
	if changed != 1 {
		t.Fatalf("expected exactly one creator_changed entry, got %d", changed)
	}
}

func TestTransitionStageNoOpAndStaleDetection(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	change := ports.StageChange{
		EntityType: entities.EntityCampaign,
		EntityID:   "camp-1",
		EntityName: "Café Aurora - Julho 2025",
		From:       entities.StageBriefing,
		To:         entities.StageScheduling,
		ActorEmail: "ops@criadores.app",
	}

	first, err := repo.TransitionStage(ctx, change)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if !first.Applied || first.Stage != entities.StageScheduling {
		t.Fatalf("expected applied transition, got %+v", first)
	}
	if campaignRow(t, repo, "camp-1").Stage != "scheduling" {
		t.Fatal("expected cached stage column refreshed")
	}

	replay, err := repo.TransitionStage(ctx, change)
	if err != nil {
		t.Fatalf("replayed transition: %v", err)
	}
	if replay.Applied {
		t.Fatal("expected replay against the reached stage to be a no-op")
	}

	stale := change
	stale.To = entities.StageFinalDelivery
	if _, err := repo.TransitionStage(ctx, stale); !errors.Is(err, domainerrors.ErrStaleStageTransition) {
		t.Fatalf("expected ErrStaleStageTransition, got %v", err)
	}
}

func TestRepairAssignedCountConverges(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-1", Role: entities.RolePrimary, ActorEmail: "ops@criadores.app",
	}); err != nil {
		t.Fatalf("add creator: %v", err)
	}
	if err := repo.db.Model(&campaignModel{}).
		Where("campaign_id = ?", "camp-1").
		Update("assigned_creators", 9).Error; err != nil {
		t.Fatalf("corrupt count: %v", err)
	}

	result, err := repo.RepairAssignedCount(ctx, "camp-1", "integrity-auditor")
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if !result.Changed || result.Previous != 9 || result.Expected != 1 {
		t.Fatalf("unexpected repair result %+v", result)
	}
	if campaignRow(t, repo, "camp-1").AssignedCreators != 1 {
		t.Fatal("expected repaired column")
	}

	rerun, err := repo.RepairAssignedCount(ctx, "camp-1", "integrity-auditor")
	if err != nil {
		t.Fatalf("idempotent repair: %v", err)
	}
	if rerun.Changed {
		t.Fatalf("expected second repair to change nothing, got %+v", rerun)
	}
}

func TestCreateCampaignUniquePerBusinessMonth(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)

	err := repo.CreateCampaign(ctx, entities.Campaign{
		CampaignID:         "camp-2",
		BusinessID:         "biz-1",
		MonthKey:           "202507",
		Title:              "Duplicate month",
		ContractedCreators: 1,
		Stage:              entities.StageBriefing,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, "ops@criadores.app")
	if !errors.Is(err, domainerrors.ErrCampaignAlreadyExists) {
		t.Fatalf("expected ErrCampaignAlreadyExists, got %v", err)
	}

	err = repo.CreateCampaign(ctx, entities.Campaign{
		CampaignID:         "camp-2",
		BusinessID:         "biz-1",
		MonthKey:           "202508",
		Title:              "Café Aurora - Agosto 2025",
		ContractedCreators: 1,
		Stage:              entities.StageBriefing,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, "ops@criadores.app")
	if err != nil {
		t.Fatalf("create for a free month: %v", err)
	}

	entries, err := repo.ListAuditEntries(ctx, ports.AuditFilter{EntityType: entities.EntityCampaign, EntityID: "camp-2"})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != entities.ActionCampaignCreated {
		t.Fatalf("expected one campaign_created entry, got %+v", entries)
	}
}

func TestCreateCampaignAllowsMonthOfDeactivatedCampaign(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, time.July, 2, 10, 0, 0, 0, time.UTC)

	err := repo.db.Model(&campaignModel{}).
		Where("campaign_id = ?", "camp-1").
		Update("active", false).
		Error
	if err != nil {
		t.Fatalf("deactivate campaign: %v", err)
	}

	// Uniqueness holds among active campaigns only; a deactivated campaign
	// frees its (business, month).
	err = repo.CreateCampaign(ctx, entities.Campaign{
		CampaignID:         "camp-2",
		BusinessID:         "biz-1",
		MonthKey:           "202507",
		Title:              "Café Aurora - Julho 2025 (retomada)",
		ContractedCreators: 2,
		Stage:              entities.StageBriefing,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, "ops@criadores.app")
	if err != nil {
		t.Fatalf("create over deactivated month: %v", err)
	}

	err = repo.CreateCampaign(ctx, entities.Campaign{
		CampaignID:         "camp-3",
		BusinessID:         "biz-1",
		MonthKey:           "202507",
		Title:              "Second active for the month",
		ContractedCreators: 1,
		Stage:              entities.StageBriefing,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, "ops@criadores.app")
	if !errors.Is(err, domainerrors.ErrCampaignAlreadyExists) {
		t.Fatalf("expected ErrCampaignAlreadyExists for a second active campaign, got %v", err)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.AddCreator(ctx, ports.AssignmentChange{
		CampaignID: "camp-1", CreatorID: "cr-1", Role: entities.RolePrimary, ActorEmail: "ops@criadores.app",
	}); err != nil {
		t.Fatalf("add creator: %v", err)
	}

	pending, err := repo.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending outbox row, got %d", len(pending))
	}
	if pending[0].EventType != "campaign.creator_added" {
		t.Fatalf("unexpected event type %q", pending[0].EventType)
	}

	if err := repo.MarkOutboxPublished(ctx, pending[0].OutboxID, time.Now().UTC()); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	pending, err = repo.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("relist pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty pending set, got %d", len(pending))
	}
}
