package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/infrastructure/database"
)

// SupabaseZipSource Supabase(PostgREST)の zip_entries テーブルからZIP対応表を読み込む
type SupabaseZipSource struct {
	client *database.SupabaseClient
}

// NewSupabaseZipSource 新しいSupabaseZipSourceを作成
func NewSupabaseZipSource(client *database.SupabaseClient) repository.ZipSource {
	return &SupabaseZipSource{client: client}
}

func (s *SupabaseZipSource) Name() string {
	return "supabase"
}

func (s *SupabaseZipSource) FetchZipEntries(ctx context.Context) ([]model.ZipEntry, error) {
	data, _, err := s.client.GetClient().From("zip_entries").Select("zip,county_name,state_name", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("zip_entriesの取得に失敗: %w", err)
	}

	entries := []model.ZipEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("zip_entriesのJSONアンマーシャル失敗: %w", err)
	}
	return entries, nil
}
