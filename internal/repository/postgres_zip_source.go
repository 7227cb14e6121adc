package repository

import (
	"context"
	"fmt"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/infrastructure/database"
)

// PostgresZipSource zip_entries テーブルからZIP対応表を読み込む
//
//	CREATE TABLE zip_entries (
//	    id          SERIAL PRIMARY KEY,
//	    zip         INTEGER NOT NULL,
//	    county_name TEXT NOT NULL,
//	    state_name  TEXT
//	);
type PostgresZipSource struct {
	client *database.PostgreSQLClient
}

// NewPostgresZipSource 新しいPostgresZipSourceを作成
func NewPostgresZipSource(client *database.PostgreSQLClient) repository.ZipSource {
	return &PostgresZipSource{client: client}
}

func (s *PostgresZipSource) Name() string {
	return "postgres"
}

// FetchZipEntries 挿入順（id順）で全件取得する
func (s *PostgresZipSource) FetchZipEntries(ctx context.Context) ([]model.ZipEntry, error) {
	query := `SELECT zip, county_name, COALESCE(state_name, '') AS state_name FROM zip_entries ORDER BY id`

	entries := []model.ZipEntry{}
	if err := s.client.DB.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("zip_entriesの取得に失敗: %w", err)
	}
	return entries, nil
}
