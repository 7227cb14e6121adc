package repository

import (
	"context"

	"PestPro-App/internal/domain/model"
)

// RegionSource 地域境界データ（トポロジー文書）の取得元
type RegionSource interface {
	// FetchRegions トポロジー文書を取得し、ロード順の地域一覧に変換する
	FetchRegions(ctx context.Context) ([]model.Region, error)
}
