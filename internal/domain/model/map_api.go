package model

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// フォーカス結果の理由コード
const (
	ReasonFocused           = "focused"
	ReasonReset             = "reset"
	ReasonInvalidZip        = "invalid_zip"
	ReasonZipNotFound       = "zip_not_found"
	ReasonRegionNotFound    = "region_not_found"
	ReasonMalformedGeometry = "malformed_geometry"
	ReasonNoCentroid        = "no_centroid"
	ReasonAssetsUnavailable = "assets_unavailable"
)

// FocusRegionRequest 地域名によるフォーカスリクエスト
type FocusRegionRequest struct {
	Name      string `json:"name" binding:"required"`
	StateName string `json:"state_name"` // 省略可
}

// FocusZipRequest ZIPコードによるフォーカスリクエスト
type FocusZipRequest struct {
	Zip ZipInput `json:"zip" binding:"required"`
}

// ZipInput フォームから入力されたZIPコード（JSONの文字列・数値どちらも受け付ける）
type ZipInput string

// UnmarshalJSON 文字列はそのまま、数値はJSON表記のまま保持する
func (z *ZipInput) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*z = ZipInput(s)
		return nil
	}
	if string(data) == "null" {
		*z = ""
		return nil
	}
	*z = ZipInput(data)
	return nil
}

// FocusResult フォーカス操作の結果
// 見つからない場合もエラーにはせず、Changed=false で現在のビューポートを返す
type FocusResult struct {
	Viewport Viewport  `json:"viewport"`
	Changed  bool      `json:"changed"`
	Reason   string    `json:"reason"`
	Zip      *ZipEntry `json:"zip,omitempty"`
}

// SessionResponse セッション作成・取得のレスポンス
type SessionResponse struct {
	SessionID string   `json:"session_id"`
	Viewport  Viewport `json:"viewport"`
}

// RegionSearchResult 地域検索のレスポンス
type RegionSearchResult struct {
	Region   RegionRef        `json:"region"`
	Centroid *orb.Point       `json:"centroid"`
	Feature  *geojson.Feature `json:"feature"`
	WKT      string           `json:"wkt,omitempty"`
}

// RegionsInBoundsResponse 境界ボックス内の地域一覧のレスポンス
type RegionsInBoundsResponse struct {
	Bounds  string      `json:"bounds"` // WKT
	Count   int         `json:"count"`
	Regions []RegionRef `json:"regions"`
}

// CentroidRequest 座標列から重心を求めるリクエスト
// 各要素は検証前の生JSON（不正な要素は計算時に除外される）
type CentroidRequest struct {
	Coordinates []json.RawMessage `json:"coordinates"`
}

// CentroidResponse 重心計算のレスポンス（結果なしの場合 Center は null）
type CentroidResponse struct {
	Center     *orb.Point `json:"center"`
	ValidPairs int        `json:"valid_pairs"`
}

// AssetStatus 起動時に読み込む静的アセットの状態
type AssetStatus struct {
	Name     string `json:"name"`
	Loaded   bool   `json:"loaded"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
	LoadedAt string `json:"loaded_at,omitempty"`
}

// AssetStatusResponse アセット状態一覧のレスポンス
type AssetStatusResponse struct {
	Assets []AssetStatus `json:"assets"`
}
