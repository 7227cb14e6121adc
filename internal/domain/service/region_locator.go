package service

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"PestPro-App/internal/domain/model"
)

// LocateRegion 指定座標を含む最初の地域を返す（地図クリック相当）
// バウンディングボックスで絞り込んでから多角形の内外判定を行う
func LocateRegion(regions []model.Region, point orb.Point) (*model.Region, bool) {
	for i := range regions {
		r := &regions[i]
		if r.Geometry == nil {
			continue
		}
		if !r.Geometry.Bound().Contains(point) {
			continue
		}
		switch g := r.Geometry.(type) {
		case orb.Polygon:
			if planar.PolygonContains(g, point) {
				return r, true
			}
		case orb.MultiPolygon:
			if planar.MultiPolygonContains(g, point) {
				return r, true
			}
		}
	}
	return nil, false
}
