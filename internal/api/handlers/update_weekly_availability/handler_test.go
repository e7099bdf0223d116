package update_weekly_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateWeek(ctx context.Context, captainID uuid.UUID, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	args := m.Called(ctx, captainID, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.WeekResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func do(svc *mockService, captainID *uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/captain/availability", strings.NewReader(body))
	if captainID != nil {
		req = req.WithContext(middleware.WithCaptainID(req.Context(), *captainID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func fullWeek() string {
	days := make([]string, 0, 7)
	for d := 0; d < 7; d++ {
		days = append(days, fmt.Sprintf(`{"day_of_week":%d,"start_time":"06:00","end_time":"24:00","is_active":true}`, d))
	}
	return `{"days":[` + strings.Join(days, ",") + `]}`
}

func TestHandle_SavesWeek(t *testing.T) {
	svc := &mockService{}
	captainID := uuid.New()

	week := &models.WeekResponse{Days: []models.WindowResponse{
		{DayOfWeek: 1, StartTime: "06:00", EndTime: "24:00", IsActive: true},
	}}
	svc.On("UpdateWeek", mock.Anything, captainID, mock.MatchedBy(func(req *models.UpdateWeekRequest) bool {
		return len(req.Days) == 7 && req.Days[1].EndTime == "24:00"
	})).Return(week, nil)

	rec := do(svc, &captainID, fullWeek())

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.WeekResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "24:00", out.Days[0].EndTime)
	svc.AssertExpectations(t)
}

func TestHandle_Rejections(t *testing.T) {
	captainID := uuid.New()
	partialWeek := `{"days":[{"day_of_week":1,"start_time":"06:00","end_time":"21:00","is_active":true}]}`

	tests := []struct {
		name       string
		captainID  *uuid.UUID
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"no captain in context", nil, fullWeek(), nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"malformed body", &captainID, `{"days":`, nil, http.StatusBadRequest, "VALIDATION"},
		{"unknown field", &captainID, `{"weeks":[]}`, nil, http.StatusBadRequest, "VALIDATION"},
		{"partial week", &captainID, partialWeek, fmt.Errorf("%w: expected 7 days, got 1", schedule.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{"storage failure", &captainID, fullWeek(), fmt.Errorf("%w: upsert", schedule.ErrInternal), http.StatusInternalServerError, "DATABASE"},
		{"unexpected failure", &captainID, fullWeek(), assert.AnError, http.StatusInternalServerError, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.serviceErr != nil {
				svc.On("UpdateWeek", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec := do(svc, tt.captainID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
			svc.AssertExpectations(t)
		})
	}
}
