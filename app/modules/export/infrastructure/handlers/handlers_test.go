package exporthandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	exportservice "github.com/Black-And-White-Club/three-under/app/modules/export/application"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeExportService struct {
	ExportXLSXFunc  func(ctx context.Context, slotKey string) ([]byte, error)
	ExportChartFunc func(ctx context.Context, slotKey string) ([]byte, error)
}

func (f *FakeExportService) ExportXLSX(ctx context.Context, slotKey string) ([]byte, error) {
	return f.ExportXLSXFunc(ctx, slotKey)
}

func (f *FakeExportService) ExportChart(ctx context.Context, slotKey string) ([]byte, error) {
	return f.ExportChartFunc(ctx, slotKey)
}

var _ exportservice.Service = (*FakeExportService)(nil)

func serve(svc exportservice.Service, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewExportHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandleXLSX(t *testing.T) {
	svc := &FakeExportService{ExportXLSXFunc: func(ctx context.Context, slotKey string) ([]byte, error) {
		assert.Equal(t, "RI_Saved_Game1_riverside", slotKey)
		return []byte("PK"), nil
	}}

	rr := serve(svc, "/api/rounds/RI_Saved_Game1_riverside/export.xlsx")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "RI_Saved_Game1_riverside.xlsx")
	assert.Equal(t, "PK", rr.Body.String())
}

func TestHandleChart_NotFound(t *testing.T) {
	svc := &FakeExportService{ExportChartFunc: func(ctx context.Context, slotKey string) ([]byte, error) {
		return nil, scorecarddomain.ErrSaveNotFound
	}}

	rr := serve(svc, "/api/rounds/RI_Saved_Game2_riverside/chart.png")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
