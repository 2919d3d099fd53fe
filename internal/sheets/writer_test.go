package sheets

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/testutil"
)

var generatedAt = time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)

func allLocationsView() kpi.View {
	return kpi.NewEngine(nil).QueryView(testutil.FixtureTwoLocations(), kpi.AllLocations)
}

func TestNewReport(t *testing.T) {
	report := NewReport(allLocationsView(), generatedAt)

	assert.Equal(t, "KPI Dashboard - All Locations", report.Title())
	require.Len(t, report.Counts, 5)
	assert.Equal(t, "Overall", report.Counts[0].Scope)
	assert.Equal(t, model.RollupCounts{Achieved: 1, BelowTarget: 1, NeedsAction: 1, Total: 3}, report.Counts[0].Counts)
	assert.Equal(t, "Inflow", report.Counts[1].Scope)
	assert.Zero(t, report.Counts[1].Counts.Total)

	names := make([]string, 0, len(report.Metrics))
	for _, row := range report.Metrics {
		names = append(names, row.Category+"/"+row.Name)
	}
	assert.Equal(t, []string{
		"Labour/Labour Revenue",
		"Parts/Parts Sales",
		"Efficiency/Paid Service",
		"Efficiency/Wash Efficiency",
	}, names)

	paid := report.Metrics[2]
	assert.Equal(t, "200", paid.Target.String())
	assert.Equal(t, "170", paid.Actual.String())
	require.True(t, paid.Achievement.Valid)
	assert.Equal(t, "85", paid.Achievement.Decimal.String())
	assert.Equal(t, "Below Target", paid.Status)

	wash := report.Metrics[3]
	assert.False(t, wash.Achievement.Valid)
	assert.Equal(t, "N/A", wash.Status)
}

func TestReport_Values(t *testing.T) {
	report := NewReport(allLocationsView(), generatedAt)
	values := report.Values()

	assert.Equal(t, []any{"KPI Dashboard - All Locations", "2024-04-15 09:30"}, values[0])
	assert.Equal(t, []any{"Scope", "Achieved", "Below Target", "Needs Action", "Total"}, values[3])
	assert.Equal(t, []any{"Overall", 1, 1, 1, 3}, values[4])

	header := report.metricHeaderRow()
	assert.Equal(t, []any{"Metric Details"}, values[header-1])
	assert.Equal(t, "Category", values[header][0])
	require.Len(t, values, header+1+len(report.Metrics))

	last := values[len(values)-1]
	assert.Equal(t, "Wash Efficiency", last[1])
	assert.Equal(t, "", last[5], "missing achievement is written as a blank cell")
	assert.Equal(t, "N/A", last[6])
}

func TestReport_ValuesEmptyView(t *testing.T) {
	view := kpi.NewEngine(nil).QueryView(model.NewLocationIndex(), "Kalina")
	report := NewReport(view, generatedAt)

	assert.Empty(t, report.Metrics)
	values := report.Values()
	assert.Len(t, values, report.metricHeaderRow()+1)
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, "12.35", toDecimal(12.345).String())
	assert.True(t, toDecimal(math.NaN()).IsZero())
	assert.True(t, toDecimal(math.Inf(1)).IsZero())
}

func TestTabTitle(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     string
	}{
		{name: "plain location", selector: "Kalina", want: "Kalina"},
		{name: "aggregate", selector: kpi.AllLocations, want: "All Locations"},
		{name: "forbidden characters", selector: "Andheri/West: [Main]", want: "Andheri-West- -Main-"},
		{name: "blank falls back", selector: "  ", want: kpi.AllLocations},
		{name: "long names are truncated", selector: strings.Repeat("x", 150), want: strings.Repeat("x", maxTabTitle)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TabTitle(tt.selector))
		})
	}
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "'Kalina'!A:Z", a1Range("Kalina", "A:Z"))
	assert.Equal(t, "'Dealer''s Hub'!A1", a1Range("Dealer's Hub", "A1"))
}

func TestFormattingRequests(t *testing.T) {
	report := NewReport(allLocationsView(), generatedAt)
	requests := formattingRequests(42, report, len(report.Values()))

	require.Len(t, requests, 6)
	for _, req := range requests {
		switch {
		case req.RepeatCell != nil:
			assert.Equal(t, int64(42), req.RepeatCell.Range.SheetId)
		case req.AutoResizeDimensions != nil:
			assert.Equal(t, int64(42), req.AutoResizeDimensions.Dimensions.SheetId)
		case req.UpdateSheetProperties != nil:
			assert.Equal(t, int64(42), req.UpdateSheetProperties.Properties.SheetId)
		}
	}

	numbers := requests[3].RepeatCell
	assert.Equal(t, int64(report.metricHeaderRow()+1), numbers.Range.StartRowIndex)
	assert.Equal(t, "#,##0.00", numbers.Cell.UserEnteredFormat.NumberFormat.Pattern)
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	view := allLocationsView()

	id, err := mock.Export(context.Background(), view)
	require.NoError(t, err)
	assert.Equal(t, "mock-spreadsheet", id)

	mock.SetExportError(errors.New("quota"))
	_, err = mock.Export(context.Background(), view)
	require.Error(t, err)

	calls := mock.GetExportCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, kpi.AllLocations, calls[0].View.Selector)
	assert.Error(t, calls[1].Error)
	assert.Equal(t, 2, mock.ExportCallCount)
}

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		query    string
		wantCode string
		status   int
	}{
		{name: "valid callback", query: "?state=abc&code=xyz", status: http.StatusOK, wantCode: "xyz"},
		{name: "state mismatch", query: "?state=other&code=xyz", status: http.StatusBadRequest, wantErr: ErrStateMismatch},
		{name: "missing code", query: "?state=abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codeChan := make(chan string, 1)
			errorChan := make(chan error, 1)
			handler := callbackHandler("abc", codeChan, errorChan)

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/callback"+tt.query, nil))
			assert.Equal(t, tt.status, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, <-codeChan)
				return
			}
			err := <-errorChan
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.Equal(t, "access", loaded.AccessToken)
}

func TestClassifyAPIError(t *testing.T) {
	assert.NoError(t, classifyAPIError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classifyAPIError(plain))

	limited := classifyAPIError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, limited, common.ErrRateLimit)

	forbidden := classifyAPIError(&googleapi.Error{Code: http.StatusForbidden})
	var retryable *common.RetryableError
	require.ErrorAs(t, forbidden, &retryable)
	assert.False(t, retryable.Retryable)

	unavailable := &googleapi.Error{Code: http.StatusServiceUnavailable}
	assert.Equal(t, error(unavailable), classifyAPIError(unavailable))
}
