package meeting

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	t.Run("rfc3339 with zone", func(t *testing.T) {
		got, err := ParseDateTime("2026-03-10T14:30:00Z")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		want := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("naive uses local time", func(t *testing.T) {
		got, err := ParseDateTime("2026-03-10T14:30:00")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got.Location() != time.Local {
			t.Fatalf("naive timestamp should be local, got %v", got.Location())
		}
	})

	t.Run("minutes precision", func(t *testing.T) {
		if _, err := ParseDateTime("2026-03-10T14:30"); err != nil {
			t.Fatalf("parse failed: %v", err)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := ParseDateTime("next tuesday"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestUpdateRequestKeyPresence(t *testing.T) {
	var req UpdateMeetingRequest
	payload := `{"location":"HQ room 4","deal":null}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.Location == nil || *req.Location != "HQ room 4" {
		t.Fatalf("location not captured: %v", req.Location)
	}
	if !req.DealSet {
		t.Fatal("explicit null deal must register as present")
	}
	if req.Deal != nil {
		t.Fatal("null deal must carry a nil value")
	}
	if req.CompanySet {
		t.Fatal("absent company must not register as present")
	}
	if req.ParticipantsSet {
		t.Fatal("absent participants must not register as present")
	}
	if req.Title != nil || req.DateTime != nil {
		t.Fatal("absent fields must stay nil")
	}
}

func TestUpdateRequestParticipantsPresence(t *testing.T) {
	var req UpdateMeetingRequest
	if err := json.Unmarshal([]byte(`{"participants":[]}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !req.ParticipantsSet {
		t.Fatal("empty participants list must register as present")
	}
	if ids := req.ParticipantIDs(); len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}

func TestParticipantIDsFiltersNonIntegers(t *testing.T) {
	req := CreateMeetingRequest{
		Participants: []interface{}{float64(5), "current_user", float64(7.5), float64(-2), float64(9), nil},
	}

	ids := req.ParticipantIDs()
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 9 {
		t.Fatalf("got %v, want [5 9]", ids)
	}
}

func TestParticipantRefMarshal(t *testing.T) {
	refs := []ParticipantRef{{ContactID: 12}, {CurrentUser: true}}
	b, err := json.Marshal(refs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `[12,"current_user"]` {
		t.Fatalf("got %s", b)
	}
}
