package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
)

// FileZipSource ローカルのJSONファイルからZIP対応表を読み込む
type FileZipSource struct {
	path string
}

// NewFileZipSource 新しいFileZipSourceを作成
func NewFileZipSource(path string) repository.ZipSource {
	return &FileZipSource{path: path}
}

func (s *FileZipSource) Name() string {
	return "file"
}

func (s *FileZipSource) FetchZipEntries(ctx context.Context) ([]model.ZipEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("ZIP対応表ファイルのオープンに失敗: %w", err)
	}
	defer f.Close()

	return decodeZipEntries(f)
}

// HTTPZipSource HTTPで配信されるJSONからZIP対応表を読み込む
type HTTPZipSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPZipSource 新しいHTTPZipSourceを作成
func NewHTTPZipSource(url string, timeout time.Duration) repository.ZipSource {
	return &HTTPZipSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPZipSource) Name() string {
	return "http"
}

func (s *HTTPZipSource) FetchZipEntries(ctx context.Context) ([]model.ZipEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ZIP対応表の取得に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ZIP対応表の取得でエラーステータスが返されました: %s", resp.Status)
	}

	return decodeZipEntries(resp.Body)
}

// decodeZipEntries JSON配列 [{zip, county_name, state_name?}, ...] をデコード
func decodeZipEntries(r io.Reader) ([]model.ZipEntry, error) {
	var entries []model.ZipEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("ZIP対応表のJSONパースに失敗: %w", err)
	}
	if entries == nil {
		entries = []model.ZipEntry{}
	}
	return entries, nil
}
