package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope shared with the other
// crIAdores runtimes. Contract-only package: fields may be added, never
// renamed or removed.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion int             `json:"schema_version"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Data          json.RawMessage `json:"data"`
}
