package helper

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"PestPro-App/internal/domain/model"
)

// NewBoundingBox 経度・緯度の範囲から境界ボックスを作成
func NewBoundingBox(minLng, minLat, maxLng, maxLat float64) (orb.Bound, error) {
	// 入力値の検証
	if minLng >= maxLng || minLat >= maxLat {
		return orb.Bound{}, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	// 座標値の範囲チェック（経度: -180〜180, 緯度: -90〜90）
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return orb.Bound{}, fmt.Errorf("座標値が有効範囲外です")
	}

	return orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}, nil
}

// BoundToWKT 境界ボックスをWKTのPOLYGONとして出力
func BoundToWKT(bound orb.Bound) string {
	return wkt.MarshalString(bound.ToPolygon())
}

// GeometryToWKT 地域ジオメトリをWKT文字列に変換（ジオメトリなしは空文字列）
func GeometryToWKT(g orb.Geometry) string {
	if g == nil {
		return ""
	}
	return wkt.MarshalString(g)
}

// RegionsInBound 境界ボックスと交差する地域をロード順で返す
func RegionsInBound(regions []model.Region, bound orb.Bound) []model.Region {
	var matched []model.Region
	for _, r := range regions {
		if r.Geometry == nil {
			continue
		}
		b := r.Geometry.Bound()
		if !b.IsEmpty() && b.Intersects(bound) {
			matched = append(matched, r)
		}
	}
	return matched
}
