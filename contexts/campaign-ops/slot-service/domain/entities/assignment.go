package entities

import "time"

type AssignmentRole string
type AssignmentStatus string

const (
	RolePrimary AssignmentRole = "primary"
	RoleBackup  AssignmentRole = "backup"

	AssignmentConfirmed    AssignmentStatus = "confirmed"
	AssignmentInProduction AssignmentStatus = "in_production"
	AssignmentRemoved      AssignmentStatus = "removed"
)

// ProductionInfo is the structured per-assignment production metadata that
// used to live in a free-form blob. Optional fields stay nil/empty until the
// corresponding step happens.
type ProductionInfo struct {
	BriefingSentAt   *time.Time
	VisitConfirmedAt *time.Time
	PostURL          string
	Notes            string
}

// Assignment links a creator to one slot of a campaign. CreatorID may be
// empty for a reserved slot that has no creator yet. Removal is a status
// change, not a delete, unless the caller asks for a hard delete.
type Assignment struct {
	AssignmentID string
	CampaignID   string
	CreatorID    string
	Role         AssignmentRole
	Status       AssignmentStatus
	Production   ProductionInfo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Assignment) Active() bool {
	return a.Status != AssignmentRemoved
}

// CountActive is the single counting rule for a campaign's assigned-creator
// count. Every code path that persists the count derives it from this rule,
// never from arithmetic on the previous value.
func CountActive(items []Assignment) int {
	count := 0
	for _, item := range items {
		if item.Active() {
			count++
		}
	}
	return count
}

func IsKnownRole(value AssignmentRole) bool {
	switch value {
	case RolePrimary, RoleBackup:
		return true
	default:
		return false
	}
}
