package httptransport

import "time"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CampaignDTO struct {
	CampaignID         string `json:"campaign_id"`
	BusinessID         string `json:"business_id"`
	MonthKey           string `json:"month_key"`
	MonthLabel         string `json:"month_label"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	ContractedCreators int    `json:"contracted_creators"`
	AssignedCreators   int    `json:"assigned_creators"`
	Stage              string `json:"stage"`
}

type SlotDTO struct {
	Index        int    `json:"index"`
	Filled       bool   `json:"filled"`
	AssignmentID string `json:"assignment_id,omitempty"`
	CreatorID    string `json:"creator_id,omitempty"`
	Role         string `json:"role,omitempty"`
	Status       string `json:"status,omitempty"`
	PostURL      string `json:"post_url,omitempty"`
}

type GetSlotsResponse struct {
	Business string      `json:"business"`
	Campaign CampaignDTO `json:"campaign"`
	Slots    []SlotDTO   `json:"slots"`
}

type AddCreatorRequest struct {
	CampaignID string `json:"campaign_id,omitempty"`
	Business   string `json:"business,omitempty"`
	Month      string `json:"month,omitempty"`
	CreatorID  string `json:"creator_id"`
	Role       string `json:"role,omitempty"`
	Actor      string `json:"actor"`
}

type RemoveCreatorRequest struct {
	CampaignID string `json:"campaign_id,omitempty"`
	Business   string `json:"business,omitempty"`
	Month      string `json:"month,omitempty"`
	CreatorID  string `json:"creator_id"`
	HardDelete bool   `json:"hard_delete,omitempty"`
	Actor      string `json:"actor"`
}

type ReplaceCreatorRequest struct {
	CampaignID   string `json:"campaign_id,omitempty"`
	Business     string `json:"business,omitempty"`
	Month        string `json:"month,omitempty"`
	OldCreatorID string `json:"old_creator_id"`
	NewCreatorID string `json:"new_creator_id"`
	Actor        string `json:"actor"`
}

type MutationResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	CampaignID       string `json:"campaign_id"`
	AssignedCreators int    `json:"assigned_creators"`
	AuditEntryID     string `json:"audit_entry_id"`
}

type TransitionRequest struct {
	CampaignID string `json:"campaign_id,omitempty"`
	Business   string `json:"business,omitempty"`
	Month      string `json:"month,omitempty"`
	From       string `json:"from_stage"`
	To         string `json:"to_stage"`
	Actor      string `json:"actor"`
	Details    string `json:"details,omitempty"`
}

type TransitionResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Applied      bool   `json:"applied"`
	Stage        string `json:"stage"`
	AuditEntryID string `json:"audit_entry_id,omitempty"`
}

type CreateCampaignRequest struct {
	Business           string `json:"business"`
	Month              string `json:"month"`
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	ContractedCreators int    `json:"contracted_creators"`
	Actor              string `json:"actor"`
}

type CreateCampaignResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Campaign CampaignDTO `json:"campaign"`
}

type AuditEntryDTO struct {
	EntryID    string    `json:"entry_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name,omitempty"`
	OldValue   string    `json:"old_value,omitempty"`
	NewValue   string    `json:"new_value,omitempty"`
	Actor      string    `json:"actor"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	CurrentStage string          `json:"current_stage"`
	Items        []AuditEntryDTO `json:"items"`
}

type MismatchDTO struct {
	CampaignID string `json:"campaign_id"`
	Expected   int    `json:"expected"`
	Actual     int    `json:"actual"`
	Delta      int    `json:"delta"`
}

type ValidateIntegrityResponse struct {
	CampaignsChecked int           `json:"campaigns_checked"`
	Mismatches       []MismatchDTO `json:"mismatches"`
}

type FixIntegrityRequest struct {
	CampaignID string `json:"campaign_id,omitempty"`
	Actor      string `json:"actor,omitempty"`
}

type RecountDTO struct {
	CampaignID string `json:"campaign_id"`
	Previous   int    `json:"previous"`
	Expected   int    `json:"expected"`
	Changed    bool   `json:"changed"`
}

type FixIntegrityResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Repaired int          `json:"repaired"`
	Results  []RecountDTO `json:"results"`
}
