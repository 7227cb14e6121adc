package model

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipCodeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"数値", `10001`, 10001, false},
		{"数字文字列", `"10001"`, 10001, false},
		{"先頭ゼロの文字列", `"00501"`, 501, false},
		{"数字でない文字列", `"abc"`, 0, true},
		{"小数", `100.5`, 0, true},
		{"真偽値", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var z ZipCode
			err := json.Unmarshal([]byte(tt.input), &z)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, z.Int())
		})
	}
}

func TestZipInputUnmarshalJSON(t *testing.T) {
	var req FocusZipRequest
	require.NoError(t, json.Unmarshal([]byte(`{"zip": 10001}`), &req))
	assert.Equal(t, ZipInput("10001"), req.Zip)

	require.NoError(t, json.Unmarshal([]byte(`{"zip": " 60601 "}`), &req))
	assert.Equal(t, ZipInput(" 60601 "), req.Zip)

	require.NoError(t, json.Unmarshal([]byte(`{"zip": null}`), &req))
	assert.Equal(t, ZipInput(""), req.Zip)
}

func TestViewportDefaults(t *testing.T) {
	v := OverviewViewport()
	assert.Equal(t, DefaultCenter(), v.Center)
	assert.Equal(t, orb.Point{-96, 37.5}, v.Center)

	v.Center[0] = 0
	assert.Equal(t, orb.Point{-96, 37.5}, OverviewViewport().Center, "返した値を変更しても初期値は変わらない")
	assert.Equal(t, DefaultZoom, v.Zoom)
	assert.GreaterOrEqual(t, v.Zoom, MinZoom)
	assert.Nil(t, v.Region)

	r := Region{ID: "36061", Name: "New York", StateName: "New York"}
	assert.Equal(t, &RegionRef{ID: "36061", Name: "New York", StateName: "New York"}, r.Ref())
}
