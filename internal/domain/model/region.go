package model

import (
	"github.com/paulmach/orb"
)

// Region 地図上の名前付き地域（郡）を表すモデル
// ロード後は不変。Geometry は orb.Polygon または orb.MultiPolygon
type Region struct {
	ID        string       `json:"id"`         // FIPSコード（例: "36061"）
	Name      string       `json:"name"`       // 郡名
	StateName string       `json:"state_name"` // 州名（不明な場合は空文字列）
	Geometry  orb.Geometry `json:"-"`          // 境界ジオメトリ
}

// HasState 州名が設定されているかチェック
func (r *Region) HasState() bool {
	return r.StateName != ""
}

// Ref Region の軽量な参照を作成
func (r *Region) Ref() *RegionRef {
	return &RegionRef{
		ID:        r.ID,
		Name:      r.Name,
		StateName: r.StateName,
	}
}

// RegionRef ビューポートが注目している地域の参照
type RegionRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StateName string `json:"state_name,omitempty"`
}
