package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/infrastructure/metrics"
	repoImpl "PestPro-App/internal/repository"
)

// AssetLoader 起動時に地域境界とZIP対応表を並行して1度だけ読み込む
// 失敗してもリトライせず、ログに残して該当機能を利用不可のままにする
type AssetLoader struct {
	regionSource repository.RegionSource
	zipSource    repository.ZipSource
	catalog      *repoImpl.MemoryCatalog
}

// NewAssetLoader 新しいAssetLoaderを作成
func NewAssetLoader(regionSource repository.RegionSource, zipSource repository.ZipSource, catalog *repoImpl.MemoryCatalog) *AssetLoader {
	return &AssetLoader{
		regionSource: regionSource,
		zipSource:    zipSource,
		catalog:      catalog,
	}
}

// LoadAll 2つのアセットを並行に読み込み、両方の完了を待つ
func (l *AssetLoader) LoadAll(ctx context.Context) {
	log.Printf("🚀 アセット読み込み開始")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		l.loadRegions(ctx)
	}()

	go func() {
		defer wg.Done()
		l.loadZipTable(ctx)
	}()

	wg.Wait()
	log.Printf("🎉 アセット読み込み処理完了")
}

func (l *AssetLoader) loadRegions(ctx context.Context) {
	start := time.Now()
	regions, err := l.regionSource.FetchRegions(ctx)
	metrics.AssetLoadDurationMs.WithLabelValues(repoImpl.AssetRegions).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		log.Printf("❌ 地域境界の読み込みに失敗: %v", err)
		metrics.AssetLoadsTotal.WithLabelValues(repoImpl.AssetRegions, "error").Inc()
		l.catalog.MarkFailed(repoImpl.AssetRegions, err)
		return
	}

	l.catalog.SetRegions(regions)
	metrics.AssetLoadsTotal.WithLabelValues(repoImpl.AssetRegions, "ok").Inc()
	log.Printf("✅ 地域境界 %d 件を読み込みました", len(regions))
}

func (l *AssetLoader) loadZipTable(ctx context.Context) {
	start := time.Now()
	entries, err := l.zipSource.FetchZipEntries(ctx)
	metrics.AssetLoadDurationMs.WithLabelValues(repoImpl.AssetZipTable).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		log.Printf("❌ ZIP対応表の読み込みに失敗 (%s): %v", l.zipSource.Name(), err)
		metrics.AssetLoadsTotal.WithLabelValues(repoImpl.AssetZipTable, "error").Inc()
		l.catalog.MarkFailed(repoImpl.AssetZipTable, err)
		return
	}

	l.catalog.SetZipEntries(entries)
	metrics.AssetLoadsTotal.WithLabelValues(repoImpl.AssetZipTable, "ok").Inc()
	log.Printf("✅ ZIP対応表 %d 件を読み込みました (%s)", len(entries), l.zipSource.Name())
}
