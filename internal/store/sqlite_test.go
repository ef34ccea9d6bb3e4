package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localleads/leads-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var testParams = model.SearchParams{
	Location:   "Springfield, IL",
	RadiusKm:   5,
	MinRating:  3.0,
	MinReviews: 10,
	MaxResults: 8,
}

func TestCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRun(ctx, testParams)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.RunStatusSearching, created.Status)

	got, err := s.GetRun(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, testParams, got.Params)
	assert.Nil(t, got.Result)
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateRunStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, testParams)
	require.NoError(t, err)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusEnriching))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusEnriching, got.Status)
}

func TestUpdateRunStatus_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateRunStatus(context.Background(), "missing", model.RunStatusComplete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetRunResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, testParams)
	require.NoError(t, err)

	result := &model.SearchResult{
		Params: testParams,
		Center: model.Center{Lat: 39.78, Lng: -89.65, FormattedAddress: "Springfield, IL, USA"},
		Leads: []model.Lead{
			{
				PlaceID:   "p1",
				Name:      "Acme Cafe",
				LeadScore: 80,
				Enrichment: &model.Enrichment{
					Description: "A coffee shop.",
					CompanySize: "Small",
				},
			},
		},
	}
	require.NoError(t, s.SetRunResult(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	require.Len(t, got.Result.Leads, 1)
	assert.Equal(t, "Acme Cafe", got.Result.Leads[0].Name)
	require.NotNil(t, got.Result.Leads[0].Enrichment)
	assert.Equal(t, "A coffee shop.", got.Result.Leads[0].Enrichment.Description)
	assert.InDelta(t, 39.78, got.Result.Center.Lat, 0.001)
}

func TestFailRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, testParams)
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, "geocode: no results"))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, "geocode: no results", got.Error)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateRun(ctx, testParams)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListRuns_Empty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
