package model

import (
	"github.com/paulmach/orb"
)

// ViewportMode ビューポートの状態
type ViewportMode string

const (
	// ViewportOverview 初期状態（全米表示）
	ViewportOverview ViewportMode = "overview"
	// ViewportFocused 特定の地域に注目している状態
	ViewportFocused ViewportMode = "focused"
)

// ビューポートの固定値
const (
	DefaultZoom = 3.0
	FocusZoom   = 4.0
	MinZoom     = 1.0
)

// 全米表示時の中心座標
const (
	DefaultCenterLon = -96.0
	DefaultCenterLat = 37.5
)

// DefaultCenter 全米表示時の中心座標 [経度, 緯度]
func DefaultCenter() orb.Point {
	return orb.Point{DefaultCenterLon, DefaultCenterLat}
}

// Viewport 地図の表示中心とズーム倍率
// 値として扱い、更新は常に新しい値を返すこと
type Viewport struct {
	Center orb.Point    `json:"center"`
	Zoom   float64      `json:"zoom"`
	Mode   ViewportMode `json:"mode"`
	Region *RegionRef   `json:"region,omitempty"`
}

// OverviewViewport 初期状態のビューポートを作成
func OverviewViewport() Viewport {
	return Viewport{
		Center: DefaultCenter(),
		Zoom:   DefaultZoom,
		Mode:   ViewportOverview,
	}
}

// IsFocused 地域に注目しているかチェック
func (v Viewport) IsFocused() bool {
	return v.Mode == ViewportFocused
}
