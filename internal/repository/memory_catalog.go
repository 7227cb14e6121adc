package repository

import (
	"sync"
	"time"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/service"
)

// アセット名
const (
	AssetRegions  = "regions"
	AssetZipTable = "zip_table"
)

// MemoryCatalog 起動時に読み込んだ地域一覧とZIP対応表を保持する
// 各コレクションはロード完了時に丸ごと差し替え、部分的な更新は行わない
type MemoryCatalog struct {
	mu          sync.RWMutex
	regionIndex *service.RegionIndex
	zipEntries  []model.ZipEntry
	status      map[string]model.AssetStatus
}

// NewMemoryCatalog 空のカタログを作成
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		status: map[string]model.AssetStatus{
			AssetRegions:  {Name: AssetRegions},
			AssetZipTable: {Name: AssetZipTable},
		},
	}
}

// SetRegions 地域一覧を差し替え、インデックスを再構築する
func (c *MemoryCatalog) SetRegions(regions []model.Region) {
	idx := service.NewRegionIndex(regions)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.regionIndex = idx
	c.status[AssetRegions] = loadedStatus(AssetRegions, len(regions))
}

// Regions 地域インデックスを取得（未ロードの場合 false）
func (c *MemoryCatalog) Regions() (*service.RegionIndex, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.regionIndex, c.regionIndex != nil
}

// SetZipEntries ZIP対応表を差し替える
func (c *MemoryCatalog) SetZipEntries(entries []model.ZipEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zipEntries = entries
	c.status[AssetZipTable] = loadedStatus(AssetZipTable, len(entries))
}

// ZipEntries ZIP対応表を取得（未ロードの場合 false）
func (c *MemoryCatalog) ZipEntries() ([]model.ZipEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.zipEntries, c.zipEntries != nil
}

// MarkFailed アセットの読み込み失敗を記録する（既存のデータは保持）
func (c *MemoryCatalog) MarkFailed(asset string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.status[asset]
	st.Name = asset
	st.Error = err.Error()
	c.status[asset] = st
}

// Status 全アセットの状態を固定順で返す
func (c *MemoryCatalog) Status() []model.AssetStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return []model.AssetStatus{
		c.status[AssetRegions],
		c.status[AssetZipTable],
	}
}

func loadedStatus(name string, count int) model.AssetStatus {
	return model.AssetStatus{
		Name:     name,
		Loaded:   true,
		Count:    count,
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
