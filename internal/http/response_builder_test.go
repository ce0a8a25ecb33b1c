package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"finboard/internal/core"
)

func TestJSONResponseBuilder(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/goals/1").
		Data(map[string]int{"n": 1}).
		Write(rr)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
	if rr.Header().Get("Location") != "/api/goals/1" {
		t.Errorf("Location = %q", rr.Header().Get("Location"))
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]int
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil || got["n"] != 1 {
		t.Errorf("body = %s (%v)", rr.Body, err)
	}

	rr = httptest.NewRecorder()
	NewJSONResponse().Status(http.StatusNoContent).Data("ignored").Write(rr)
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Errorf("204 response = %d %q", rr.Code, rr.Body)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantField string
		wantMsg   string
	}{
		{
			name:      "validation",
			err:       &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount},
			wantCode:  http.StatusUnprocessableEntity,
			wantField: "amount",
			wantMsg:   core.ErrInvalidAmount.Error(),
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("update: %w", &core.NotFoundError{Resource: "goal", ID: "g1"}),
			wantCode: http.StatusNotFound,
			wantMsg:  `goal "g1" not found`,
		},
		{
			name:     "internal detail hidden",
			err:      errors.New("disk on fire"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			ErrorResponse(tt.err).Write(rr)
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			var body errorBody
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg || body.Field != tt.wantField {
				t.Errorf("body = %+v, want %q/%q", body, tt.wantMsg, tt.wantField)
			}
		})
	}
}
