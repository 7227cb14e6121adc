package repository

import (
	"context"

	"PestPro-App/internal/domain/model"
)

// ZipSource ZIPコード対応表の取得元
type ZipSource interface {
	// Name ログ・メトリクス用の取得元名
	Name() string

	// FetchZipEntries 対応表全体を取得する
	FetchZipEntries(ctx context.Context) ([]model.ZipEntry, error)
}
