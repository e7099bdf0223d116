package delete_trip_type

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/triptypes"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Delete(ctx context.Context, captainID, id uuid.UUID) (*triptypes.DeleteResult, error) {
	args := m.Called(ctx, captainID, id)
	if resp := args.Get(0); resp != nil {
		return resp.(*triptypes.DeleteResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func do(svc *mockService, captainID *uuid.UUID, tripTypeID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/captain/trip-types/{tripTypeId}", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/captain/trip-types/"+tripTypeID, nil)
	if captainID != nil {
		req = req.WithContext(middleware.WithCaptainID(req.Context(), *captainID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_DeleteOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		deactivated bool
	}{
		{"unused trip type is removed", false},
		{"trip type with bookings is deactivated", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			captainID, tripTypeID := uuid.New(), uuid.New()

			svc.On("Delete", mock.Anything, captainID, tripTypeID).
				Return(&triptypes.DeleteResult{ID: tripTypeID, Deactivated: tt.deactivated}, nil)

			rec := do(svc, &captainID, tripTypeID.String())

			require.Equal(t, http.StatusOK, rec.Code)
			var out triptypes.DeleteResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tripTypeID, out.ID)
			assert.Equal(t, tt.deactivated, out.Deactivated)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_Rejections(t *testing.T) {
	captainID := uuid.New()

	tests := []struct {
		name       string
		captainID  *uuid.UUID
		tripTypeID string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"no captain in context", nil, uuid.NewString(), nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad trip type id", &captainID, "7", nil, http.StatusBadRequest, "VALIDATION"},
		{"not found", &captainID, uuid.NewString(), triptypes.ErrTripTypeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"other captain", &captainID, uuid.NewString(), triptypes.ErrAccessDenied, http.StatusForbidden, "FORBIDDEN"},
		{"storage failure", &captainID, uuid.NewString(), triptypes.ErrInternal, http.StatusInternalServerError, "DATABASE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.serviceErr != nil {
				svc.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec := do(svc, tt.captainID, tt.tripTypeID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
			svc.AssertExpectations(t)
		})
	}
}
