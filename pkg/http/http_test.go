package http

import (
	"encoding/json"
	"errors"
	apperrors "innkeep/pkg/errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "not found",
			err:        apperrors.NotFoundWithID("Room", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
			wantError:  "Room not found",
		},
		{
			name:       "room unavailable",
			err:        apperrors.RoomUnavailable("Room 101 is already reserved"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeRoomUnavailable,
			wantError:  "Room 101 is already reserved",
		},
		{
			name:       "invalid date range",
			err:        apperrors.InvalidDateRange("checkin after checkout"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeInvalidDateRange,
			wantError:  "checkin after checkout",
		},
		{
			name:       "plain error is hidden",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError returned %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}

func TestWriteCreatedAt(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteCreatedAt(rec, "/api/v1/reservations/id/1", map[string]string{"id": "1"}); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/api/v1/reservations/id/1" {
		t.Errorf("Location = %q", got)
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{"", 10, 0, false},
		{"limit=25&offset=50", 25, 50, false},
		{"limit=1000", 100, 0, false},
		{"offset=-3", 10, 0, false},
		{"limit=ten", 0, 0, true},
		{"offset=x", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms?"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(req)
			if tt.wantErr {
				if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
					t.Fatalf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?start=2024-06-10&end=2024-13-01", nil)

	got, err := ExtractDate(req, "start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (civil.Date{Year: 2024, Month: time.June, Day: 10}); got != want {
		t.Errorf("start = %v, want %v", got, want)
	}

	if _, err := ExtractDate(req, "end"); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for a malformed date, got %v", err)
	}
	if _, err := ExtractDate(req, "missing"); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for a missing date, got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Number string `json:"number"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"number":"101"}`))
	if err := DecodeJSON(req, &dst); err != nil || dst.Number != "101" {
		t.Fatalf("DecodeJSON() = %v, number = %q", err, dst.Number)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"floor":3}`))
	if err := DecodeJSON(req, &dst); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("unknown fields should be rejected, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSON(req, &dst); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("empty body should be rejected, got %v", err)
	}
}
