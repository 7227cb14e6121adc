package service

import (
	"PestPro-App/internal/domain/model"
)

// MatchRegion 地域一覧を先頭から走査し、名前（と州名）が完全一致する最初の地域を返す
// stateName が空の場合は州名を条件にしない。大文字小文字は区別する。
func MatchRegion(regions []model.Region, name, stateName string) (*model.Region, bool) {
	for i := range regions {
		r := &regions[i]
		if r.Name != name {
			continue
		}
		if stateName != "" && r.StateName != stateName {
			continue
		}
		return r, true
	}
	return nil, false
}

type regionKey struct {
	name  string
	state string
}

// RegionIndex (名前, 州名) をキーにした地域インデックス
// ロード時に1度だけ構築し、重複名は最初に現れたものだけを保持する（MatchRegion と同じ結果になる）
type RegionIndex struct {
	regions     []model.Region
	byName      map[string]int
	byNameState map[regionKey]int
}

// NewRegionIndex 地域一覧からインデックスを構築
func NewRegionIndex(regions []model.Region) *RegionIndex {
	idx := &RegionIndex{
		regions:     regions,
		byName:      make(map[string]int, len(regions)),
		byNameState: make(map[regionKey]int, len(regions)),
	}
	for i, r := range regions {
		if _, exists := idx.byName[r.Name]; !exists {
			idx.byName[r.Name] = i
		}
		key := regionKey{name: r.Name, state: r.StateName}
		if _, exists := idx.byNameState[key]; !exists {
			idx.byNameState[key] = i
		}
	}
	return idx
}

// Match MatchRegion と同じ規則で地域を検索する
func (idx *RegionIndex) Match(name, stateName string) (*model.Region, bool) {
	var (
		i  int
		ok bool
	)
	if stateName == "" {
		i, ok = idx.byName[name]
	} else {
		i, ok = idx.byNameState[regionKey{name: name, state: stateName}]
	}
	if !ok {
		return nil, false
	}
	return &idx.regions[i], true
}

// Regions インデックス対象の地域一覧（ロード順）
func (idx *RegionIndex) Regions() []model.Region {
	return idx.regions
}

// Len 地域数
func (idx *RegionIndex) Len() int {
	return len(idx.regions)
}
