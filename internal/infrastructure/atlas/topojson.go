package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Topology TopoJSON文書
// https://github.com/topojson/topojson-specification
type Topology struct {
	Type      string                   `json:"type"`
	Transform *Transform               `json:"transform,omitempty"`
	Objects   map[string]*TopoGeometry `json:"objects"`
	Arcs      [][][]float64            `json:"arcs"`
}

// Transform 量子化された座標を元に戻すための変換
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// TopoGeometry TopoJSONのジオメトリオブジェクト
type TopoGeometry struct {
	Type       string                 `json:"type"`
	ID         json.RawMessage        `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Arcs       json.RawMessage        `json:"arcs,omitempty"`
	Geometries []*TopoGeometry        `json:"geometries,omitempty"`
}

// Feature トポロジーから復元した1つの地物
type Feature struct {
	ID         string
	Properties map[string]interface{}
	Geometry   orb.Geometry // orb.Polygon / orb.MultiPolygon、それ以外は nil
}

// Name properties.name を取得
func (f *Feature) Name() string {
	if f.Properties == nil {
		return ""
	}
	if name, ok := f.Properties["name"].(string); ok {
		return name
	}
	return ""
}

// ParseTopology JSONバイト列からTopologyを生成
func ParseTopology(data []byte) (*Topology, error) {
	var topo Topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("トポロジーのJSONパースに失敗: %w", err)
	}
	if topo.Type != "Topology" {
		return nil, fmt.Errorf("トポロジー文書ではありません: type=%q", topo.Type)
	}
	return &topo, nil
}

// Features 指定オブジェクトの地物一覧を文書内の順序で返す
// GeometryCollection は展開する
func (t *Topology) Features(object string) ([]Feature, error) {
	obj, ok := t.Objects[object]
	if !ok || obj == nil {
		return nil, fmt.Errorf("オブジェクト %q がトポロジーに存在しません", object)
	}

	arcs := t.decodeArcs()

	var features []Feature
	var walk func(g *TopoGeometry) error
	walk = func(g *TopoGeometry) error {
		if g == nil {
			return nil
		}
		if g.Type == "GeometryCollection" {
			for _, child := range g.Geometries {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}

		geom, err := g.toOrb(arcs)
		if err != nil {
			return fmt.Errorf("ジオメトリ %s の変換に失敗: %w", decodeID(g.ID), err)
		}
		features = append(features, Feature{
			ID:         decodeID(g.ID),
			Properties: g.Properties,
			Geometry:   geom,
		})
		return nil
	}

	if err := walk(obj); err != nil {
		return nil, err
	}
	return features, nil
}

// decodeArcs 差分符号化・量子化されたアークを絶対座標に変換
func (t *Topology) decodeArcs() [][]orb.Point {
	decoded := make([][]orb.Point, len(t.Arcs))
	for i, arc := range t.Arcs {
		points := make([]orb.Point, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if t.Transform != nil {
				x += pos[0]
				y += pos[1]
				points = append(points, orb.Point{
					x*t.Transform.Scale[0] + t.Transform.Translate[0],
					y*t.Transform.Scale[1] + t.Transform.Translate[1],
				})
			} else {
				points = append(points, orb.Point{pos[0], pos[1]})
			}
		}
		decoded[i] = points
	}
	return decoded
}

func (g *TopoGeometry) toOrb(arcs [][]orb.Point) (orb.Geometry, error) {
	switch g.Type {
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return nil, fmt.Errorf("Polygonのアーク参照が不正: %w", err)
		}
		return stitchPolygon(rings, arcs)
	case "MultiPolygon":
		var polys [][][]int
		if err := json.Unmarshal(g.Arcs, &polys); err != nil {
			return nil, fmt.Errorf("MultiPolygonのアーク参照が不正: %w", err)
		}
		mp := make(orb.MultiPolygon, 0, len(polys))
		for _, rings := range polys {
			poly, err := stitchPolygon(rings, arcs)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	case "":
		return nil, nil
	}
	// 点・線は地域として扱わない
	return nil, nil
}

func stitchPolygon(rings [][]int, arcs [][]orb.Point) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(rings))
	for _, refs := range rings {
		ring, err := stitchRing(refs, arcs)
		if err != nil {
			return nil, err
		}
		poly = append(poly, ring)
	}
	return poly, nil
}

// stitchRing アーク参照列を1つの閉じた環につなぐ
// 負の参照 ^i はアーク i を逆順で使う。隣接アークの共有端点は1つにまとめる
func stitchRing(refs []int, arcs [][]orb.Point) (orb.Ring, error) {
	var ring orb.Ring
	for _, ref := range refs {
		idx := ref
		reversed := ref < 0
		if reversed {
			idx = ^ref
		}
		if idx < 0 || idx >= len(arcs) {
			return nil, errors.New("アーク参照が範囲外です: " + strconv.Itoa(ref))
		}

		arc := arcs[idx]
		if len(ring) > 0 {
			ring = ring[:len(ring)-1]
		}
		if reversed {
			for i := len(arc) - 1; i >= 0; i-- {
				ring = append(ring, arc[i])
			}
		} else {
			ring = append(ring, arc...)
		}
	}
	return ring, nil
}

// decodeID 文字列・数値どちらのIDも文字列として扱う
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), " \t\r\n")
}
