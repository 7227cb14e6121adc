package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/domain/service"
	repoImpl "PestPro-App/internal/repository"
)

func newYorkRing() orb.Ring {
	return orb.Ring{{-74, 40}, {-73, 40}, {-73, 41}, {-74, 41}, {-74, 40}}
}

func testCatalog() *repoImpl.MemoryCatalog {
	c := repoImpl.NewMemoryCatalog()
	c.SetRegions([]model.Region{
		{ID: "17031", Name: "Cook", StateName: "Illinois", Geometry: orb.Polygon{{{-88, 41.5}, {-87.5, 41.5}, {-87.5, 42}, {-88, 42}, {-88, 41.5}}}},
		{ID: "36061", Name: "New York", StateName: "New York", Geometry: orb.Polygon{newYorkRing()}},
		{ID: "00000", Name: "Broken", StateName: "Nowhere", Geometry: orb.Polygon{}},
	})
	c.SetZipEntries([]model.ZipEntry{
		{Zip: 60601, CountyName: "Cook", StateName: "Illinois"},
		{Zip: 10001, CountyName: "New York", StateName: "New York"},
		{Zip: 99999, CountyName: "Atlantis"},
	})
	return c
}

func newTestUseCase(t *testing.T, catalog *repoImpl.MemoryCatalog) (MapUseCase, string) {
	t.Helper()
	uc := NewMapUseCase(
		catalog,
		repoImpl.NewMemoryViewportSessionRepository(0),
		service.NewViewportController(),
		service.CentroidFirstRing,
	)
	sess, err := uc.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sess.SessionID)
	assert.Equal(t, model.OverviewViewport(), sess.Viewport)
	return uc, sess.SessionID
}

func TestFocusByZipEndToEnd(t *testing.T) {
	ctx := context.Background()
	uc, id := newTestUseCase(t, testCatalog())

	result, err := uc.FocusByZip(ctx, id, &model.FocusZipRequest{Zip: "10001"})
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, model.ReasonFocused, result.Reason)
	assert.InDelta(t, -73.6, result.Viewport.Center.Lon(), 1e-9)
	assert.InDelta(t, 40.4, result.Viewport.Center.Lat(), 1e-9)
	assert.Equal(t, 4.0, result.Viewport.Zoom)
	require.NotNil(t, result.Viewport.Region)
	assert.Equal(t, "36061", result.Viewport.Region.ID)
	require.NotNil(t, result.Zip)
	assert.Equal(t, "New York", result.Zip.CountyName)

	sess, err := uc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, result.Viewport, sess.Viewport, "フォーカス結果が保存される")
}

func TestFocusMissesLeaveViewportUnchanged(t *testing.T) {
	ctx := context.Background()
	uc, id := newTestUseCase(t, testCatalog())

	focused, err := uc.FocusByRegion(ctx, id, &model.FocusRegionRequest{Name: "Cook"})
	require.NoError(t, err)
	require.True(t, focused.Changed)

	cases := []struct {
		name   string
		run    func() (*model.FocusResult, error)
		reason string
	}{
		{"ZIPが対応表にない", func() (*model.FocusResult, error) {
			return uc.FocusByZip(ctx, id, &model.FocusZipRequest{Zip: "12345"})
		}, model.ReasonZipNotFound},
		{"ZIPが数値でない", func() (*model.FocusResult, error) {
			return uc.FocusByZip(ctx, id, &model.FocusZipRequest{Zip: "abcde"})
		}, model.ReasonInvalidZip},
		{"ZIPの郡が地域一覧にない", func() (*model.FocusResult, error) {
			return uc.FocusByZip(ctx, id, &model.FocusZipRequest{Zip: "99999"})
		}, model.ReasonRegionNotFound},
		{"地域名が見つからない", func() (*model.FocusResult, error) {
			return uc.FocusByRegion(ctx, id, &model.FocusRegionRequest{Name: "Cook", StateName: "Texas"})
		}, model.ReasonRegionNotFound},
		{"座標データが空", func() (*model.FocusResult, error) {
			return uc.FocusByRegion(ctx, id, &model.FocusRegionRequest{Name: "Broken"})
		}, model.ReasonMalformedGeometry},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.run()
			require.NoError(t, err, "見つからない場合もエラーにはしない")
			assert.False(t, result.Changed)
			assert.Equal(t, tc.reason, result.Reason)
			assert.Equal(t, focused.Viewport, result.Viewport)

			sess, err := uc.GetSession(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, focused.Viewport, sess.Viewport)
		})
	}
}

func TestFocusWithoutAssets(t *testing.T) {
	ctx := context.Background()
	uc, id := newTestUseCase(t, repoImpl.NewMemoryCatalog())

	result, err := uc.FocusByZip(ctx, id, &model.FocusZipRequest{Zip: "10001"})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, model.ReasonAssetsUnavailable, result.Reason)

	result, err = uc.FocusByRegion(ctx, id, &model.FocusRegionRequest{Name: "New York"})
	require.NoError(t, err)
	assert.Equal(t, model.ReasonAssetsUnavailable, result.Reason)

	_, err = uc.SearchRegion(ctx, "New York", "")
	assert.ErrorIs(t, err, ErrAssetsUnavailable)

	_, err = uc.LookupZip(ctx, "10001")
	assert.ErrorIs(t, err, ErrAssetsUnavailable)
}

func TestResetAndUnknownSession(t *testing.T) {
	ctx := context.Background()
	uc, id := newTestUseCase(t, testCatalog())

	_, err := uc.FocusByZip(ctx, id, &model.FocusZipRequest{Zip: "10001"})
	require.NoError(t, err)

	sess, err := uc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-96, 37.5}, sess.Viewport.Center)
	assert.Equal(t, 3.0, sess.Viewport.Zoom)

	_, err = uc.GetSession(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = uc.Reset(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = uc.FocusByZip(ctx, "unknown", &model.FocusZipRequest{Zip: "10001"})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSearchRegionAndRegionAt(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t, testCatalog())

	result, err := uc.SearchRegion(ctx, "New York", "New York")
	require.NoError(t, err)
	assert.Equal(t, "36061", result.Region.ID)
	require.NotNil(t, result.Centroid)
	assert.InDelta(t, -73.6, result.Centroid.Lon(), 1e-9)
	require.NotNil(t, result.Feature)
	assert.Equal(t, "36061", result.Feature.ID)
	assert.Equal(t, "New York", result.Feature.Properties["state_name"])

	_, err = uc.SearchRegion(ctx, "new york", "")
	assert.ErrorIs(t, err, ErrRegionNotFound)

	broken, err := uc.SearchRegion(ctx, "Broken", "")
	require.NoError(t, err)
	assert.Nil(t, broken.Centroid)

	at, err := uc.RegionAt(ctx, orb.Point{-87.6, 41.8})
	require.NoError(t, err)
	assert.Equal(t, "Cook", at.Region.Name)

	_, err = uc.RegionAt(ctx, orb.Point{0, 0})
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestLookupZip(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t, testCatalog())

	entry, err := uc.LookupZip(ctx, " 60601 ")
	require.NoError(t, err)
	assert.Equal(t, "Cook", entry.CountyName)

	_, err = uc.LookupZip(ctx, "12345")
	assert.ErrorIs(t, err, ErrZipNotFound)

	_, err = uc.LookupZip(ctx, "")
	assert.ErrorIs(t, err, service.ErrInvalidZip)
}

func TestCentroidAndAssetStatus(t *testing.T) {
	uc, _ := newTestUseCase(t, testCatalog())

	resp := uc.Centroid(&model.CentroidRequest{Coordinates: []json.RawMessage{
		json.RawMessage(`[0, 0]`),
		json.RawMessage(`[4, 2]`),
		json.RawMessage(`"bad"`),
	}})
	require.NotNil(t, resp.Center)
	assert.Equal(t, orb.Point{2, 1}, *resp.Center)
	assert.Equal(t, 2, resp.ValidPairs)

	empty := uc.Centroid(&model.CentroidRequest{})
	assert.Nil(t, empty.Center)
	assert.Equal(t, 0, empty.ValidPairs)

	status := uc.AssetStatus()
	require.Len(t, status.Assets, 2)
	assert.True(t, status.Assets[0].Loaded)
	assert.Equal(t, 3, status.Assets[1].Count)
}

type failingSessionRepository struct{}

func (failingSessionRepository) Save(ctx context.Context, id string, v model.Viewport) error {
	return errors.New("redis down")
}

func (failingSessionRepository) Get(ctx context.Context, id string) (*model.Viewport, error) {
	return nil, errors.New("redis down")
}

func TestSessionStoreFailure(t *testing.T) {
	uc := NewMapUseCase(testCatalog(), failingSessionRepository{}, service.NewViewportController(), service.CentroidFirstRing)

	_, err := uc.CreateSession(context.Background())
	assert.Error(t, err)

	_, err = uc.GetSession(context.Background(), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestRegionsInBounds(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t, testCatalog())

	resp, err := uc.RegionsInBounds(ctx, -75, 39.5, -72, 41.5)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "36061", resp.Regions[0].ID)
	assert.NotEmpty(t, resp.Bounds)

	resp, err = uc.RegionsInBounds(ctx, -90, 39, -70, 43)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count, "ロード順で返す")
	assert.Equal(t, "17031", resp.Regions[0].ID)

	empty, err := uc.RegionsInBounds(ctx, 100, 10, 101, 11)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Regions)

	_, err = uc.RegionsInBounds(ctx, -72, 39.5, -75, 41.5)
	assert.ErrorIs(t, err, ErrInvalidBounds)
}
