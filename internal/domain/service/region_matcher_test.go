package service

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PestPro-App/internal/domain/model"
)

func testRegions() []model.Region {
	return []model.Region{
		{ID: "06059", Name: "Orange", StateName: "California", Geometry: orb.Polygon{{{-118, 33.5}, {-117.4, 33.5}, {-117.4, 33.9}, {-118, 33.9}}}},
		{ID: "12095", Name: "Orange", StateName: "Florida", Geometry: orb.Polygon{{{-81.6, 28.3}, {-80.9, 28.3}, {-80.9, 28.8}, {-81.6, 28.8}}}},
		{ID: "36071", Name: "Orange", StateName: "New York", Geometry: orb.Polygon{{{-74.8, 41.2}, {-73.9, 41.2}, {-73.9, 41.6}, {-74.8, 41.6}}}},
		{ID: "36061", Name: "New York", StateName: "New York", Geometry: orb.Polygon{{{-74.02, 40.70}, {-73.91, 40.70}, {-73.91, 40.88}, {-74.02, 40.88}}}},
	}
}

func TestMatchRegion(t *testing.T) {
	regions := testRegions()

	t.Run("州名なしの重複名は挿入順で最初の地域", func(t *testing.T) {
		r, ok := MatchRegion(regions, "Orange", "")
		require.True(t, ok)
		assert.Equal(t, "06059", r.ID)
	})

	t.Run("州名で絞り込む", func(t *testing.T) {
		r, ok := MatchRegion(regions, "Orange", "New York")
		require.True(t, ok)
		assert.Equal(t, "36071", r.ID)
	})

	t.Run("大文字小文字を区別する", func(t *testing.T) {
		_, ok := MatchRegion(regions, "orange", "")
		assert.False(t, ok)

		_, ok = MatchRegion(regions, "Orange", "florida")
		assert.False(t, ok)
	})

	t.Run("一致しなければ見つからない", func(t *testing.T) {
		_, ok := MatchRegion(regions, "Cook", "")
		assert.False(t, ok)

		_, ok = MatchRegion(nil, "Orange", "")
		assert.False(t, ok)
	})

	t.Run("返り値はコレクション内の要素を指す", func(t *testing.T) {
		r, ok := MatchRegion(regions, "New York", "New York")
		require.True(t, ok)
		assert.Same(t, &regions[3], r)
	})
}

func TestRegionIndex(t *testing.T) {
	regions := testRegions()
	idx := NewRegionIndex(regions)
	assert.Equal(t, len(regions), idx.Len())

	queries := []struct {
		name  string
		state string
	}{
		{"Orange", ""},
		{"Orange", "California"},
		{"Orange", "Florida"},
		{"Orange", "New York"},
		{"Orange", "Texas"},
		{"New York", ""},
		{"New York", "New York"},
		{"orange", ""},
		{"Cook", "Illinois"},
	}

	for _, q := range queries {
		want, wantOK := MatchRegion(regions, q.name, q.state)
		got, gotOK := idx.Match(q.name, q.state)
		require.Equal(t, wantOK, gotOK, "name=%q state=%q", q.name, q.state)
		if wantOK {
			assert.Equal(t, want.ID, got.ID, "name=%q state=%q", q.name, q.state)
		}
	}

	t.Run("同じ(名前,州名)が重複しても最初の地域を保持する", func(t *testing.T) {
		dup := append(testRegions(), model.Region{ID: "99999", Name: "Orange", StateName: "California"})
		idx := NewRegionIndex(dup)
		r, ok := idx.Match("Orange", "California")
		require.True(t, ok)
		assert.Equal(t, "06059", r.ID)
	})
}

func TestLocateRegion(t *testing.T) {
	regions := testRegions()

	r, ok := LocateRegion(regions, orb.Point{-73.97, 40.78})
	require.True(t, ok)
	assert.Equal(t, "36061", r.ID)

	r, ok = LocateRegion(regions, orb.Point{-81.2, 28.5})
	require.True(t, ok)
	assert.Equal(t, "12095", r.ID)

	_, ok = LocateRegion(regions, orb.Point{0, 0})
	assert.False(t, ok)

	_, ok = LocateRegion([]model.Region{{ID: "x", Name: "Empty"}}, orb.Point{0, 0})
	assert.False(t, ok)
}
