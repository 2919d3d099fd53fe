package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "Kalina", wantErr: false},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "location")
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "location") {
				t.Errorf("error %q should name the parameter", err)
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		row     *model.RawRow
		wantErr error
		name    string
	}{
		{name: "nil row", row: nil, wantErr: ErrNilParameter},
		{name: "tags only", row: &model.RawRow{Tags: "Inflow"}},
		{name: "parameters only", row: &model.RawRow{Parameters: "Paid Service"}},
		{name: "blank names", row: &model.RawRow{Tags: " ", Parameters: ""}, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecord(tt.row)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecords_ReportsIndex(t *testing.T) {
	rows := []model.RawRow{{Tags: "Inflow"}, {}}
	err := validateRecords(rows)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if !strings.Contains(err.Error(), "index 1") {
		t.Errorf("error %q should name the failing index", err)
	}
}
