package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	"criadores/contexts/campaign-ops/slot-service/domain/monthkey"
	"criadores/contexts/campaign-ops/slot-service/ports"

	"github.com/google/uuid"
)

// Seed is the initial dataset for an in-memory store.
type Seed struct {
	Businesses []entities.Business
	Creators   []entities.Creator
	Campaigns  []entities.Campaign
}

type outboxRow struct {
	ports.OutboxMessage
	published bool
}

// Store implements every slot-service port in memory. It backs the use-case
// tests and the local development mode. Mutation methods mirror the
// transactional contract of the postgres adapter: they stage every change
// and commit only at the end, so an injected failure leaves no partial
// state.
type Store struct {
	mu sync.Mutex

	businesses  map[string]entities.Business
	creators    map[string]entities.Creator
	campaigns   map[string]entities.Campaign
	assignments []entities.Assignment
	audit       []entities.AuditEntry
	outbox      []outboxRow

	now      time.Time
	failOnce map[string]error
}

func NewStore(seed Seed) *Store {
	s := &Store{
		businesses: make(map[string]entities.Business, len(seed.Businesses)),
		creators:   make(map[string]entities.Creator, len(seed.Creators)),
		campaigns:  make(map[string]entities.Campaign, len(seed.Campaigns)),
		now:        time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC),
		failOnce:   make(map[string]error),
	}
	for _, item := range seed.Businesses {
		s.businesses[item.BusinessID] = item
	}
	for _, item := range seed.Creators {
		s.creators[item.CreatorID] = item
	}
	for _, item := range seed.Campaigns {
		s.campaigns[item.CampaignID] = item
	}
	return s
}

// FailOnce makes the next call of the named operation ("add_creator",
// "remove_creator", "replace_creator", "transition_stage") fail before
// committing anything.
func (s *Store) FailOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOnce[op] = err
}

func (s *Store) takeFailure(op string) error {
	err, ok := s.failOnce[op]
	if ok {
		delete(s.failOnce, op)
		return err
	}
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick()
}

// tick advances the clock so consecutive writes never share a timestamp.
// Callers must hold s.mu.
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) GetBusiness(_ context.Context, ref string) (entities.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref = strings.TrimSpace(ref)
	if item, ok := s.businesses[ref]; ok {
		return item, nil
	}
	for _, item := range s.businesses {
		if strings.EqualFold(item.Name, ref) {
			return item, nil
		}
	}
	return entities.Business{}, domainerrors.ErrBusinessNotFound
}

func (s *Store) GetCreator(_ context.Context, ref string) (entities.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref = strings.TrimSpace(ref)
	if item, ok := s.creators[ref]; ok {
		return item, nil
	}
	for _, item := range s.creators {
		if strings.EqualFold(item.Name, ref) || strings.EqualFold(item.Instagram, ref) {
			return item, nil
		}
	}
	return entities.Creator{}, domainerrors.ErrCreatorNotFound
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign, actorEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrCampaignAlreadyExists
	}
	for _, existing := range s.campaigns {
		if existing.Active && existing.BusinessID == campaign.BusinessID && existing.MonthKey == campaign.MonthKey {
			return domainerrors.ErrCampaignAlreadyExists
		}
	}
	s.campaigns[campaign.CampaignID] = campaign
	s.audit = append(s.audit, entities.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     entities.ActionCampaignCreated,
		EntityType: entities.EntityCampaign,
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Title,
		NewValue:   campaign.MonthKey,
		ActorEmail: actorEmail,
		CreatedAt:  campaign.CreatedAt,
	})
	s.appendOutbox("campaign.created", campaign.CampaignID, campaign.CreatedAt, map[string]any{
		"campaign_id":         campaign.CampaignID,
		"business_id":         campaign.BusinessID,
		"month_key":           campaign.MonthKey,
		"contracted_creators": campaign.ContractedCreators,
	})
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCampaign(campaignID)
}

func (s *Store) getCampaign(campaignID string) (entities.Campaign, error) {
	item, ok := s.campaigns[strings.TrimSpace(campaignID)]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) GetCampaignByMonth(_ context.Context, businessID string, month monthkey.Key) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.campaigns {
		if item.Active && item.BusinessID == businessID && item.MonthKey == month.String() {
			return item, nil
		}
	}
	return entities.Campaign{}, domainerrors.ErrCampaignNotFound
}

func (s *Store) ListActiveCampaigns(_ context.Context) ([]entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, item := range s.campaigns {
		if item.Active {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListActiveAssignments(_ context.Context, campaignID string) ([]entities.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listActive(campaignID), nil
}

func (s *Store) listActive(campaignID string) []entities.Assignment {
	items := make([]entities.Assignment, 0)
	for _, item := range s.assignments {
		if item.CampaignID == campaignID && item.Active() {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

func (s *Store) AddCreator(_ context.Context, change ports.AssignmentChange) (ports.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, err := s.getCampaign(change.CampaignID)
	if err != nil {
		return ports.MutationResult{}, err
	}
	for _, item := range s.assignments {
		if item.CampaignID == campaign.CampaignID && item.CreatorID == change.CreatorID && item.Active() {
			return ports.MutationResult{}, domainerrors.ErrCreatorAlreadyAssigned
		}
	}
	if err := s.takeFailure("add_creator"); err != nil {
		return ports.MutationResult{}, err
	}

	now := s.tick()
	assignment := entities.Assignment{
		AssignmentID: uuid.NewString(),
		CampaignID:   campaign.CampaignID,
		CreatorID:    change.CreatorID,
		Role:         change.Role,
		Status:       entities.AssignmentConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	staged := append(append([]entities.Assignment(nil), s.assignments...), assignment)
	count := entities.CountActive(filterCampaign(staged, campaign.CampaignID))

	entry := entities.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     entities.ActionCreatorAdded,
		EntityType: entities.EntityCampaign,
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Title,
		NewValue:   change.CreatorID,
		ActorEmail: change.ActorEmail,
		Details:    change.Details,
		CreatedAt:  now,
	}

	s.assignments = staged
	campaign.AssignedCreators = count
	campaign.UpdatedAt = now
	s.campaigns[campaign.CampaignID] = campaign
	s.audit = append(s.audit, entry)
	s.appendOutbox("campaign.creator_added", campaign.CampaignID, now, map[string]any{
		"campaign_id":       campaign.CampaignID,
		"creator_id":        change.CreatorID,
		"assigned_creators": count,
	})

	return ports.MutationResult{
		CampaignID:       campaign.CampaignID,
		AssignedCreators: count,
		AuditEntryID:     entry.EntryID,
	}, nil
}

func (s *Store) RemoveCreator(_ context.Context, change ports.AssignmentChange) (ports.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, err := s.getCampaign(change.CampaignID)
	if err != nil {
		return ports.MutationResult{}, err
	}
	index := -1
	for i, item := range s.assignments {
		if item.CampaignID == campaign.CampaignID && item.CreatorID == change.CreatorID && item.Active() {
			index = i
			break
		}
	}
	if index < 0 {
		return ports.MutationResult{}, domainerrors.ErrAssignmentNotFound
	}
	if err := s.takeFailure("remove_creator"); err != nil {
		return ports.MutationResult{}, err
	}

	now := s.tick()
	previous := s.assignments[index].Status
	staged := append([]entities.Assignment(nil), s.assignments...)
	if change.HardDelete {
		staged = append(staged[:index], staged[index+1:]...)
	} else {
		staged[index].Status = entities.AssignmentRemoved
		staged[index].UpdatedAt = now
	}
	count := entities.CountActive(filterCampaign(staged, campaign.CampaignID))

	entry := entities.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     entities.ActionCreatorRemoved,
		EntityType: entities.EntityCampaign,
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Title,
		OldValue:   string(previous),
		NewValue:   string(entities.AssignmentRemoved),
		ActorEmail: change.ActorEmail,
		Details:    change.Details,
		CreatedAt:  now,
	}

	s.assignments = staged
	campaign.AssignedCreators = count
	campaign.UpdatedAt = now
	s.campaigns[campaign.CampaignID] = campaign
	s.audit = append(s.audit, entry)
	s.appendOutbox("campaign.creator_removed", campaign.CampaignID, now, map[string]any{
		"campaign_id":       campaign.CampaignID,
		"creator_id":        change.CreatorID,
		"hard_delete":       change.HardDelete,
		"assigned_creators": count,
	})

	return ports.MutationResult{
		CampaignID:       campaign.CampaignID,
		AssignedCreators: count,
		AuditEntryID:     entry.EntryID,
	}, nil
}

func (s *Store) ReplaceCreator(_ context.Context, change ports.ReplaceChange) (ports.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, err := s.getCampaign(change.CampaignID)
	if err != nil {
		return ports.MutationResult{}, err
	}
	oldIndex := -1
	for i, item := range s.assignments {
		if item.CampaignID == campaign.CampaignID && item.Active() {
			if item.CreatorID == change.NewCreatorID {
				return ports.MutationResult{}, domainerrors.ErrCreatorAlreadyAssigned
			}
			if item.CreatorID == change.OldCreatorID && oldIndex < 0 {
				oldIndex = i
			}
		}
	}
	if oldIndex < 0 {
		return ports.MutationResult{}, domainerrors.ErrAssignmentNotFound
	}

	now := s.tick()
	staged := append([]entities.Assignment(nil), s.assignments...)
	staged[oldIndex].Status = entities.AssignmentRemoved
	staged[oldIndex].UpdatedAt = now
	staged = append(staged, entities.Assignment{
		AssignmentID: uuid.NewString(),
		CampaignID:   campaign.CampaignID,
		CreatorID:    change.NewCreatorID,
		Role:         s.assignments[oldIndex].Role,
		Status:       entities.AssignmentConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	// Injected failures fire after staging and before commit, proving the
	// substitution is all-or-nothing.
	if err := s.takeFailure("replace_creator"); err != nil {
		return ports.MutationResult{}, err
	}

	count := entities.CountActive(filterCampaign(staged, campaign.CampaignID))
	entry := entities.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     entities.ActionCreatorChanged,
		EntityType: entities.EntityCampaign,
		EntityID:   campaign.CampaignID,
		EntityName: campaign.Title,
		OldValue:   change.OldCreatorID,
		NewValue:   change.NewCreatorID,
		ActorEmail: change.ActorEmail,
		Details:    change.Details,
		CreatedAt:  now,
	}

	s.assignments = staged
	campaign.AssignedCreators = count
	campaign.UpdatedAt = now
	s.campaigns[campaign.CampaignID] = campaign
	s.audit = append(s.audit, entry)
	s.appendOutbox("campaign.creator_changed", campaign.CampaignID, now, map[string]any{
		"campaign_id":       campaign.CampaignID,
		"old_creator_id":    change.OldCreatorID,
		"new_creator_id":    change.NewCreatorID,
		"assigned_creators": count,
	})

	return ports.MutationResult{
		CampaignID:       campaign.CampaignID,
		AssignedCreators: count,
		AuditEntryID:     entry.EntryID,
	}, nil
}

func (s *Store) TransitionStage(_ context.Context, change ports.StageChange) (ports.StageResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentStage(change.EntityType, change.EntityID)
	if err != nil {
		return ports.StageResult{}, err
	}
	if current == change.To {
		return ports.StageResult{Applied: false, Stage: current}, nil
	}
	if change.From != current {
		return ports.StageResult{}, domainerrors.ErrStaleStageTransition
	}
	if err := s.takeFailure("transition_stage"); err != nil {
		return ports.StageResult{}, err
	}

	now := s.tick()
	action := entities.ActionCampaignStatusChanged
	if change.EntityType == entities.EntityBusiness {
		action = entities.ActionBusinessStageChanged
	}
	entry := entities.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     action,
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		EntityName: change.EntityName,
		OldValue:   string(change.From),
		NewValue:   string(change.To),
		ActorEmail: change.ActorEmail,
		Details:    change.Details,
		CreatedAt:  now,
	}

	switch change.EntityType {
	case entities.EntityCampaign:
		campaign := s.campaigns[change.EntityID]
		campaign.Stage = change.To
		campaign.UpdatedAt = now
		s.campaigns[change.EntityID] = campaign
	case entities.EntityBusiness:
		business := s.businesses[change.EntityID]
		business.Stage = change.To
		business.UpdatedAt = now
		s.businesses[change.EntityID] = business
	}
	s.audit = append(s.audit, entry)

	topic := "campaign.status_changed"
	if change.EntityType == entities.EntityBusiness {
		topic = "business.stage_changed"
	}
	s.appendOutbox(topic, change.EntityID, now, map[string]any{
		"entity_type": string(change.EntityType),
		"entity_id":   change.EntityID,
		"from_stage":  string(change.From),
		"to_stage":    string(change.To),
	})

	return ports.StageResult{Applied: true, AuditEntryID: entry.EntryID, Stage: change.To}, nil
}

// currentStage resolves the stage from the audit log first, falling back to
// the cached column for entities with no stage entries yet.
func (s *Store) currentStage(entityType entities.EntityType, entityID string) (entities.PipelineStage, error) {
	for i := len(s.audit) - 1; i >= 0; i-- {
		entry := s.audit[i]
		if entry.EntityType == entityType && entry.EntityID == entityID && entities.IsStageChange(entry.Action) {
			return entities.PipelineStage(entry.NewValue), nil
		}
	}
	switch entityType {
	case entities.EntityCampaign:
		campaign, ok := s.campaigns[entityID]
		if !ok {
			return "", domainerrors.ErrCampaignNotFound
		}
		if campaign.Stage != "" {
			return campaign.Stage, nil
		}
	case entities.EntityBusiness:
		business, ok := s.businesses[entityID]
		if !ok {
			return "", domainerrors.ErrBusinessNotFound
		}
		if business.Stage != "" {
			return business.Stage, nil
		}
	}
	return entities.StageBriefing, nil
}

func (s *Store) ListAuditEntries(_ context.Context, filter ports.AuditFilter) ([]entities.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.AuditEntry, 0)
	for i := len(s.audit) - 1; i >= 0; i-- {
		entry := s.audit[i]
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && entry.EntityID != filter.EntityID {
			continue
		}
		items = append(items, entry)
		if filter.Limit > 0 && len(items) >= filter.Limit {
			break
		}
	}
	return items, nil
}

func (s *Store) CountActiveAssignments(_ context.Context, campaignID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entities.CountActive(filterCampaign(s.assignments, campaignID)), nil
}

func (s *Store) RepairAssignedCount(_ context.Context, campaignID string, actorEmail string) (ports.RecountResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, err := s.getCampaign(campaignID)
	if err != nil {
		return ports.RecountResult{}, err
	}
	expected := entities.CountActive(filterCampaign(s.assignments, campaignID))
	result := ports.RecountResult{
		CampaignID: campaignID,
		Previous:   campaign.AssignedCreators,
		Expected:   expected,
	}
	if expected == campaign.AssignedCreators {
		return result, nil
	}

	now := s.tick()
	campaign.AssignedCreators = expected
	campaign.UpdatedAt = now
	s.campaigns[campaignID] = campaign
	s.audit = append(s.audit, entities.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     entities.ActionCountRepaired,
		EntityType: entities.EntityCampaign,
		EntityID:   campaignID,
		EntityName: campaign.Title,
		OldValue:   strconv.Itoa(result.Previous),
		NewValue:   strconv.Itoa(expected),
		ActorEmail: actorEmail,
		CreatedAt:  now,
	})
	result.Changed = true
	return result, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.OutboxMessage)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrInvalidInput
}

// CorruptAssignedCount overwrites the cached count without touching the
// assignment set. Test hook for drift scenarios.
func (s *Store) CorruptAssignedCount(campaignID string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, ok := s.campaigns[campaignID]
	if !ok {
		return
	}
	campaign.AssignedCreators = value
	s.campaigns[campaignID] = campaign
}

// AuditEntries returns a snapshot of the full log in append order.
func (s *Store) AuditEntries() []entities.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.AuditEntry(nil), s.audit...)
}

func (s *Store) appendOutbox(eventType string, entityID string, now time.Time, data map[string]any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	envelope := ports.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    now,
		SourceService: "slot-service",
		SchemaVersion: 1,
		EntityType:    string(entities.EntityCampaign),
		EntityID:      entityID,
		Data:          payload,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	s.outbox = append(s.outbox, outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:  envelope.EventID,
			EventType: eventType,
			Payload:   body,
			CreatedAt: now,
		},
	})
}

func filterCampaign(items []entities.Assignment, campaignID string) []entities.Assignment {
	filtered := make([]entities.Assignment, 0, len(items))
	for _, item := range items {
		if item.CampaignID == campaignID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
