package atlas

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"PestPro-App/internal/domain/model"
)

// DefaultAtlasURL 米国郡境界のトポロジー文書
const DefaultAtlasURL = "https://cdn.jsdelivr.net/npm/us-atlas@3/counties-10m.json"

// トポロジー内のオブジェクト名
const (
	CountiesObject = "counties"
	StatesObject   = "states"
)

// AtlasClient トポロジー文書をHTTPで取得して地域一覧に変換する
type AtlasClient struct {
	url        string
	httpClient *http.Client
}

// NewAtlasClient 新しいAtlasClientを作成
func NewAtlasClient(url string, timeout time.Duration) *AtlasClient {
	if url == "" {
		url = DefaultAtlasURL
	}
	return &AtlasClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRegions トポロジー文書を取得し、郡ごとの地域に変換する（リトライなし）
func (c *AtlasClient) FetchRegions(ctx context.Context) ([]model.Region, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("トポロジー文書の取得に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("トポロジー文書の取得でエラーステータスが返されました: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスの読み込みに失敗: %w", err)
	}

	topo, err := ParseTopology(body)
	if err != nil {
		return nil, err
	}

	regions, err := RegionsFromTopology(topo)
	if err != nil {
		return nil, err
	}

	log.Printf("🗺️ トポロジー文書から %d 件の地域を読み込みました (%s)", len(regions), c.url)
	return regions, nil
}

// RegionsFromTopology counties オブジェクトを地域一覧に変換する
// 州名は states オブジェクトから、郡FIPSコードの上2桁で引く
func RegionsFromTopology(topo *Topology) ([]model.Region, error) {
	counties, err := topo.Features(CountiesObject)
	if err != nil {
		return nil, err
	}

	stateNames := make(map[string]string)
	if _, ok := topo.Objects[StatesObject]; ok {
		states, err := topo.Features(StatesObject)
		if err != nil {
			return nil, err
		}
		for _, s := range states {
			stateNames[s.ID] = s.Name()
		}
	} else {
		log.Printf("⚠️ トポロジーに %q オブジェクトがありません。州名なしで読み込みます", StatesObject)
	}

	regions := make([]model.Region, 0, len(counties))
	for _, f := range counties {
		regions = append(regions, model.Region{
			ID:        f.ID,
			Name:      f.Name(),
			StateName: stateNames[stateFIPS(f.ID)],
			Geometry:  f.Geometry,
		})
	}
	return regions, nil
}

// stateFIPS 郡FIPSコード（5桁）から州FIPSコード（2桁）を取り出す
func stateFIPS(countyID string) string {
	if len(countyID) < 2 {
		return ""
	}
	return countyID[:2]
}
