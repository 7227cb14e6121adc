package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// CentroidMode 地域ジオメトリから中心点を求める方式
type CentroidMode string

const (
	// CentroidFirstRing 最初のポリゴンの外環のみを平均する（標準）
	CentroidFirstRing CentroidMode = "first_ring"
	// CentroidAllOuterRings 全ポリゴンの外環の頂点をまとめて平均する（初期版の挙動）
	CentroidAllOuterRings CentroidMode = "all_outer_rings"
)

// ParseCentroidMode 文字列から CentroidMode を取得
func ParseCentroidMode(s string) (CentroidMode, error) {
	switch CentroidMode(s) {
	case CentroidFirstRing, CentroidAllOuterRings:
		return CentroidMode(s), nil
	case "":
		return CentroidFirstRing, nil
	}
	return "", fmt.Errorf("未対応の重心計算モードです: %s", s)
}

// CalculateCentroid 座標ペア列の算術平均を返す
// ちょうど2つの有限な数値でないペアは除外し、残りが0件なら false を返す。
// 面積重心ではなく頂点の単純平均なので、頂点が密な辺に偏る。
func CalculateCentroid(pairs [][]float64) (orb.Point, bool) {
	points := make([]orb.Point, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			continue
		}
		if !isFinite(p[0]) || !isFinite(p[1]) {
			continue
		}
		points = append(points, orb.Point{p[0], p[1]})
	}
	return meanPoint(points)
}

// RingCentroid 環の頂点の算術平均を返す
func RingCentroid(ring orb.Ring) (orb.Point, bool) {
	return meanPoint(validPoints(ring))
}

// GeometryCentroid 地域ジオメトリの中心点を指定方式で計算する
// Polygon / MultiPolygon 以外、または外環が空の場合は false
func GeometryCentroid(g orb.Geometry, mode CentroidMode) (orb.Point, bool) {
	polygons := outerPolygons(g)
	if len(polygons) == 0 {
		return orb.Point{}, false
	}

	if mode == CentroidAllOuterRings {
		var points []orb.Point
		for _, poly := range polygons {
			if len(poly) == 0 {
				continue
			}
			points = append(points, validPoints(poly[0])...)
		}
		return meanPoint(points)
	}

	first := polygons[0]
	if len(first) == 0 {
		return orb.Point{}, false
	}
	return RingCentroid(first[0])
}

// HasUsableGeometry 重心計算に使える外環を1つ以上持つかチェック
func HasUsableGeometry(g orb.Geometry) bool {
	for _, poly := range outerPolygons(g) {
		if len(poly) > 0 && len(poly[0]) > 0 {
			return true
		}
	}
	return false
}

// ParseCoordinatePairs 検証前のJSON要素を座標ペアに変換する
// 数値配列として読めない要素や null を含む要素は空ペアとして残し、重心計算側で除外させる
func ParseCoordinatePairs(raw []json.RawMessage) [][]float64 {
	pairs := make([][]float64, len(raw))
	for i, r := range raw {
		var values []*float64
		if err := json.Unmarshal(r, &values); err != nil {
			continue
		}
		p := make([]float64, 0, len(values))
		for _, v := range values {
			if v == nil {
				p = nil
				break
			}
			p = append(p, *v)
		}
		pairs[i] = p
	}
	return pairs
}

// CountValidPairs 重心計算に使われるペアの数を返す
func CountValidPairs(pairs [][]float64) int {
	n := 0
	for _, p := range pairs {
		if len(p) == 2 && isFinite(p[0]) && isFinite(p[1]) {
			n++
		}
	}
	return n
}

func outerPolygons(g orb.Geometry) []orb.Polygon {
	switch geom := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{geom}
	case orb.MultiPolygon:
		return []orb.Polygon(geom)
	}
	return nil
}

func validPoints(ring orb.Ring) []orb.Point {
	points := make([]orb.Point, 0, len(ring))
	for _, p := range ring {
		if isFinite(p[0]) && isFinite(p[1]) {
			points = append(points, p)
		}
	}
	return points
}

// meanPoint 0件の場合はゼロ除算せず false を返す
func meanPoint(points []orb.Point) (orb.Point, bool) {
	if len(points) == 0 {
		return orb.Point{}, false
	}

	var totalX, totalY float64
	for _, p := range points {
		totalX += p[0]
		totalY += p[1]
	}
	n := float64(len(points))
	return orb.Point{totalX / n, totalY / n}, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
