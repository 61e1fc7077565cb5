package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	slotservice "criadores/contexts/campaign-ops/slot-service"
	"criadores/contexts/campaign-ops/slot-service/adapters/memory"
	"criadores/contexts/campaign-ops/slot-service/domain/entities"
	slothttp "criadores/contexts/campaign-ops/slot-service/transport/http"
)

func newTestServer() *Server {
	seeded := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	module := slotservice.NewInMemoryModule(memory.Seed{
		Businesses: []entities.Business{
			{BusinessID: "biz-1", Name: "Café Aurora", Stage: entities.StageBriefing, Active: true, CreatedAt: seeded, UpdatedAt: seeded},
		},
		Creators: []entities.Creator{
			{CreatorID: "cr-1", Name: "Ana Lima", Instagram: "@analima", Active: true, CreatedAt: seeded, UpdatedAt: seeded},
			{CreatorID: "cr-2", Name: "Bruno Reis", Instagram: "@brunoreis", Active: true, CreatedAt: seeded, UpdatedAt: seeded},
		},
		Campaigns: []entities.Campaign{
			{
				CampaignID:         "camp-1",
				BusinessID:         "biz-1",
				MonthKey:           "202507",
				Title:              "Café Aurora - Julho 2025",
				ContractedCreators: 2,
				Stage:              entities.StageBriefing,
				Active:             true,
				CreatedAt:          seeded,
				UpdatedAt:          seeded,
			},
		},
	}, nil)
	return New(module, nil, ":0")
}

func doJSON(t *testing.T, s *Server, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestGetSlotsEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/slots?business=Caf%C3%A9%20Aurora&month=julho%202025", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[slothttp.GetSlotsResponse](t, rec)
	if len(resp.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(resp.Slots))
	}
	if resp.Campaign.MonthKey != "202507" {
		t.Fatalf("expected month key 202507, got %q", resp.Campaign.MonthKey)
	}
}

func TestGetSlotsRequiresBusiness(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/slots", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetSlotsUnknownBusiness(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/slots?business=nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decode[slothttp.ErrorResponse](t, rec)
	if resp.Code != "business_not_found" {
		t.Fatalf("expected business_not_found, got %q", resp.Code)
	}
}

func TestAddCreatorEndpointAndDuplicateConflict(t *testing.T) {
	s := newTestServer()
	body := slothttp.AddCreatorRequest{
		Business:  "Café Aurora",
		Month:     "julho 2025",
		CreatorID: "cr-1",
		Actor:     "ops@criadores.app",
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/assignments/add", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[slothttp.MutationResponse](t, rec)
	if resp.AssignedCreators != 1 {
		t.Fatalf("expected assigned count 1, got %d", resp.AssignedCreators)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/assignments/add", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", rec.Code)
	}
	errResp := decode[slothttp.ErrorResponse](t, rec)
	if errResp.Code != "creator_already_assigned" {
		t.Fatalf("expected creator_already_assigned, got %q", errResp.Code)
	}
}

func TestAddCreatorRejectsMalformedJSON(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assignments/add", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddCreatorInvalidMonthToken(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/assignments/add", slothttp.AddCreatorRequest{
		Business:  "Café Aurora",
		Month:     "smarch 2025",
		CreatorID: "cr-1",
		Actor:     "ops@criadores.app",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decode[slothttp.ErrorResponse](t, rec)
	if resp.Code != "invalid_month_token" {
		t.Fatalf("expected invalid_month_token, got %q", resp.Code)
	}
}

func TestReplaceCreatorEndpoint(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, http.MethodPost, "/api/v1/assignments/add", slothttp.AddCreatorRequest{
		Business:  "Café Aurora",
		Month:     "julho 2025",
		CreatorID: "cr-1",
		Actor:     "ops@criadores.app",
	})

	rec := doJSON(t, s, http.MethodPut, "/api/v1/assignments/replace", slothttp.ReplaceCreatorRequest{
		Business:     "Café Aurora",
		Month:        "julho 2025",
		OldCreatorID: "cr-1",
		NewCreatorID: "cr-2",
		Actor:        "ops@criadores.app",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransitionEndpointMapsStageErrors(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/stage/transition", slothttp.TransitionRequest{
		Business: "Café Aurora",
		Month:    "julho 2025",
		From:     "briefing",
		To:       "shipped",
		Actor:    "ops@criadores.app",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an unknown stage, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/stage/transition", slothttp.TransitionRequest{
		Business: "Café Aurora",
		Month:    "julho 2025",
		From:     "briefing",
		To:       "scheduling",
		Actor:    "ops@criadores.app",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/stage/transition", slothttp.TransitionRequest{
		Business: "Café Aurora",
		Month:    "julho 2025",
		From:     "briefing",
		To:       "final_delivery",
		Actor:    "ops@criadores.app",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a stale transition, got %d", rec.Code)
	}
}

func TestCreateCampaignEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/campaigns", slothttp.CreateCampaignRequest{
		Business:           "Café Aurora",
		Month:              "agosto 2025",
		ContractedCreators: 3,
		Actor:              "ops@criadores.app",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/campaigns", slothttp.CreateCampaignRequest{
		Business:           "Café Aurora",
		Month:              "julho 2025",
		ContractedCreators: 3,
		Actor:              "ops@criadores.app",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for the seeded month, got %d", rec.Code)
	}
}

func TestHistoryEndpointValidatesLimit(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/campaigns/camp-1/history?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/campaigns/camp-1/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	history := decode[slothttp.HistoryResponse](t, rec)
	if history.CurrentStage != "briefing" {
		t.Fatalf("expected briefing before any transition, got %q", history.CurrentStage)
	}
}

func TestIntegrityEndpoints(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/integrity/validate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	report := decode[slothttp.ValidateIntegrityResponse](t, rec)
	if len(report.Mismatches) != 0 {
		t.Fatalf("expected clean seed data, got %+v", report.Mismatches)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/integrity/fix", slothttp.FixIntegrityRequest{Actor: "ops@criadores.app"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
