package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"github.com/heartmarshall/namematch-backend/internal/service/indexing"
	"github.com/heartmarshall/namematch-backend/pkg/ctxutil"
)

type indexAdminMock struct {
	ReloadFunc  func(ctx context.Context, reason string) (nameindex.Stats, error)
	StatsFunc   func() (nameindex.Stats, error)
	reloadCalls []string
}

func (m *indexAdminMock) Reload(ctx context.Context, reason string) (nameindex.Stats, error) {
	m.reloadCalls = append(m.reloadCalls, reason)
	return m.ReloadFunc(ctx, reason)
}

func (m *indexAdminMock) Stats() (nameindex.Stats, error) {
	return m.StatsFunc()
}

type datasetStoreMock struct {
	CountFunc        func(ctx context.Context) (int, error)
	LatestImportFunc func(ctx context.Context) (*domain.DatasetImport, error)
}

func (m *datasetStoreMock) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

func (m *datasetStoreMock) LatestImport(ctx context.Context) (*domain.DatasetImport, error) {
	return m.LatestImportFunc(ctx)
}

func TestAdminHandler_Reload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"empty dataset", indexing.ErrEmptyDataset, http.StatusUnprocessableEntity},
		{"source failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &indexAdminMock{ReloadFunc: func(ctx context.Context, reason string) (nameindex.Stats, error) {
				if tt.err != nil {
					return nameindex.Stats{}, tt.err
				}
				return nameindex.Stats{Entries: 10, NameKeys: 8, FullKeys: 9}, nil
			}}
			h := NewAdminHandler(mock, nil, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/admin/index/reload", nil)
			req = req.WithContext(ctxutil.WithAdminSubject(req.Context(), "ops"))
			rec := httptest.NewRecorder()
			h.Reload(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, []string{indexing.ReasonAdmin}, mock.reloadCalls)

			if tt.err == nil {
				var stats nameindex.Stats
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
				assert.Equal(t, 10, stats.Entries)
			}
		})
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"loaded", nil, http.StatusOK},
		{"not loaded", domain.ErrIndexUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &indexAdminMock{StatsFunc: func() (nameindex.Stats, error) {
				return nameindex.Stats{Entries: 3}, tt.err
			}}
			h := NewAdminHandler(mock, nil, discardLogger())

			rec := httptest.NewRecorder()
			h.Stats(rec, httptest.NewRequest(http.MethodGet, "/admin/index/stats", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAdminHandler_Stats_Dataset(t *testing.T) {
	t.Parallel()

	imported := &domain.DatasetImport{
		ID:         uuid.New(),
		Source:     "classification.tsv",
		RowCount:   3,
		ImportedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		count     error
		latest    *domain.DatasetImport
		latestErr error
		wantStore int
		wantLast  bool
		wantError bool
	}{
		{"imported", nil, imported, nil, 3, true, false},
		{"nothing imported", nil, nil, domain.ErrNotFound, 3, false, false},
		{"count fails", errors.New("connection refused"), nil, nil, 0, false, true},
		{"import lookup fails", nil, nil, errors.New("connection refused"), 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			index := &indexAdminMock{StatsFunc: func() (nameindex.Stats, error) {
				return nameindex.Stats{Entries: 3, NameKeys: 2, FullKeys: 3}, nil
			}}
			store := &datasetStoreMock{
				CountFunc: func(ctx context.Context) (int, error) {
					if tt.count != nil {
						return 0, tt.count
					}
					return 3, nil
				},
				LatestImportFunc: func(ctx context.Context) (*domain.DatasetImport, error) {
					return tt.latest, tt.latestErr
				},
			}
			h := NewAdminHandler(index, store, discardLogger())

			rec := httptest.NewRecorder()
			h.Stats(rec, httptest.NewRequest(http.MethodGet, "/admin/index/stats", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var body statsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, 3, body.Entries)
			require.NotNil(t, body.Dataset)
			assert.Equal(t, tt.wantStore, body.Dataset.StoredNames)
			assert.Equal(t, tt.wantError, body.Dataset.Error != "")
			if tt.wantLast {
				require.NotNil(t, body.Dataset.LastImport)
				assert.Equal(t, imported.ID, body.Dataset.LastImport.ID)
				assert.Equal(t, "classification.tsv", body.Dataset.LastImport.Source)
				assert.True(t, imported.ImportedAt.Equal(body.Dataset.LastImport.ImportedAt))
			} else {
				assert.Nil(t, body.Dataset.LastImport)
			}
		})
	}
}

func TestAdminHandler_Stats_FileSourceOmitsDataset(t *testing.T) {
	t.Parallel()

	index := &indexAdminMock{StatsFunc: func() (nameindex.Stats, error) {
		return nameindex.Stats{Entries: 1}, nil
	}}
	h := NewAdminHandler(index, nil, discardLogger())

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/admin/index/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "dataset")
	assert.EqualValues(t, 1, body["entries"])
}
