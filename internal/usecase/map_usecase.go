package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"PestPro-App/internal/domain/helper"
	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/domain/service"
	"PestPro-App/internal/infrastructure/metrics"
	repoImpl "PestPro-App/internal/repository"
)

var (
	// ErrAssetsUnavailable 必要なアセットが読み込まれていない
	ErrAssetsUnavailable = errors.New("アセットが読み込まれていません")
	// ErrRegionNotFound 条件に一致する地域がない
	ErrRegionNotFound = errors.New("地域が見つかりません")
	// ErrZipNotFound ZIPコードが対応表にない
	ErrZipNotFound = errors.New("ZIPコードが見つかりません")
	// ErrInvalidBounds 境界ボックスの指定が不正
	ErrInvalidBounds = errors.New("境界ボックスが不正です")
)

// MapUseCase 地図ビューポートの操作とアセット参照を提供する
type MapUseCase interface {
	// CreateSession 全米表示のビューポートを持つセッションを作成する
	CreateSession(ctx context.Context) (*model.SessionResponse, error)

	// GetSession セッションの現在のビューポートを取得する
	GetSession(ctx context.Context, sessionID string) (*model.SessionResponse, error)

	// FocusByRegion 地域名（と州名）で検索し、その中心にフォーカスする
	FocusByRegion(ctx context.Context, sessionID string, req *model.FocusRegionRequest) (*model.FocusResult, error)

	// FocusByZip ZIPコードから郡・州を引き、その中心にフォーカスする
	FocusByZip(ctx context.Context, sessionID string, req *model.FocusZipRequest) (*model.FocusResult, error)

	// Reset ビューポートを初期表示に戻す
	Reset(ctx context.Context, sessionID string) (*model.SessionResponse, error)

	// SearchRegion 地域をGeoJSON地物と重心付きで返す
	SearchRegion(ctx context.Context, name, stateName string) (*model.RegionSearchResult, error)

	// RegionAt 指定座標を含む地域を返す
	RegionAt(ctx context.Context, point orb.Point) (*model.RegionSearchResult, error)

	// RegionsInBounds 境界ボックスと交差する地域を返す
	RegionsInBounds(ctx context.Context, minLng, minLat, maxLng, maxLat float64) (*model.RegionsInBoundsResponse, error)

	// LookupZip ZIPコードの対応エントリを返す
	LookupZip(ctx context.Context, rawZip string) (*model.ZipEntry, error)

	// Centroid 任意の座標列の重心を計算する
	Centroid(req *model.CentroidRequest) *model.CentroidResponse

	// AssetStatus アセットの読み込み状態を返す
	AssetStatus() *model.AssetStatusResponse
}

// mapUseCaseImpl はMapUseCaseの実装
type mapUseCaseImpl struct {
	catalog      *repoImpl.MemoryCatalog
	sessions     repository.ViewportSessionRepository
	viewport     service.ViewportController
	centroidMode service.CentroidMode
}

// NewMapUseCase 新しいMapUseCaseインスタンスを作成
func NewMapUseCase(
	catalog *repoImpl.MemoryCatalog,
	sessions repository.ViewportSessionRepository,
	viewport service.ViewportController,
	centroidMode service.CentroidMode,
) MapUseCase {
	return &mapUseCaseImpl{
		catalog:      catalog,
		sessions:     sessions,
		viewport:     viewport,
		centroidMode: centroidMode,
	}
}

func (u *mapUseCaseImpl) CreateSession(ctx context.Context) (*model.SessionResponse, error) {
	sessionID := uuid.New().String()
	viewport := u.viewport.Reset()

	if err := u.sessions.Save(ctx, sessionID, viewport); err != nil {
		return nil, fmt.Errorf("セッションの作成に失敗: %w", err)
	}

	log.Printf("🆕 セッション作成: %s", sessionID)
	return &model.SessionResponse{SessionID: sessionID, Viewport: viewport}, nil
}

func (u *mapUseCaseImpl) GetSession(ctx context.Context, sessionID string) (*model.SessionResponse, error) {
	current, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &model.SessionResponse{SessionID: sessionID, Viewport: current}, nil
}

func (u *mapUseCaseImpl) FocusByRegion(ctx context.Context, sessionID string, req *model.FocusRegionRequest) (*model.FocusResult, error) {
	current, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := u.focusOnRegion(current, req.Name, req.StateName)
	return u.commit(ctx, sessionID, result)
}

func (u *mapUseCaseImpl) FocusByZip(ctx context.Context, sessionID string, req *model.FocusZipRequest) (*model.FocusResult, error) {
	current, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rawZip := string(req.Zip)
	zip, err := service.ParseZip(rawZip)
	if err != nil {
		log.Printf("⚠️ ZIPコードの解析に失敗: %v", err)
		metrics.LookupsTotal.WithLabelValues(metrics.LookupZip, metrics.OutcomeInvalid).Inc()
		return u.commit(ctx, sessionID, unchanged(current, model.ReasonInvalidZip))
	}
	if service.HasLeadingZero(rawZip) {
		log.Printf("⚠️ ZIPコード %q は先頭のゼロが失われ %d として検索されます", rawZip, zip)
	}

	entries, ok := u.catalog.ZipEntries()
	if !ok {
		log.Printf("⚠️ ZIP対応表が未ロードのためフォーカスできません (zip=%d)", zip)
		return u.commit(ctx, sessionID, unchanged(current, model.ReasonAssetsUnavailable))
	}

	entry, found := service.LookupZip(entries, zip)
	if !found {
		log.Printf("⚠️ ZIPコード %d が見つかりません", zip)
		metrics.LookupsTotal.WithLabelValues(metrics.LookupZip, metrics.OutcomeMiss).Inc()
		return u.commit(ctx, sessionID, unchanged(current, model.ReasonZipNotFound))
	}
	metrics.LookupsTotal.WithLabelValues(metrics.LookupZip, metrics.OutcomeHit).Inc()

	result := u.focusOnRegion(current, entry.CountyName, entry.StateName)
	matched := *entry
	result.Zip = &matched
	return u.commit(ctx, sessionID, result)
}

func (u *mapUseCaseImpl) Reset(ctx context.Context, sessionID string) (*model.SessionResponse, error) {
	if _, err := u.loadSession(ctx, sessionID); err != nil {
		return nil, err
	}

	viewport := u.viewport.Reset()
	if err := u.sessions.Save(ctx, sessionID, viewport); err != nil {
		return nil, fmt.Errorf("ビューポートの保存に失敗: %w", err)
	}
	metrics.ResetTotal.Inc()

	return &model.SessionResponse{SessionID: sessionID, Viewport: viewport}, nil
}

func (u *mapUseCaseImpl) SearchRegion(ctx context.Context, name, stateName string) (*model.RegionSearchResult, error) {
	idx, ok := u.catalog.Regions()
	if !ok {
		return nil, ErrAssetsUnavailable
	}

	region, found := idx.Match(name, stateName)
	if !found {
		metrics.LookupsTotal.WithLabelValues(metrics.LookupRegion, metrics.OutcomeMiss).Inc()
		return nil, fmt.Errorf("%w: %s (%s)", ErrRegionNotFound, name, stateName)
	}
	metrics.LookupsTotal.WithLabelValues(metrics.LookupRegion, metrics.OutcomeHit).Inc()

	return u.toSearchResult(region), nil
}

func (u *mapUseCaseImpl) RegionAt(ctx context.Context, point orb.Point) (*model.RegionSearchResult, error) {
	idx, ok := u.catalog.Regions()
	if !ok {
		return nil, ErrAssetsUnavailable
	}

	region, found := service.LocateRegion(idx.Regions(), point)
	if !found {
		metrics.LookupsTotal.WithLabelValues(metrics.LookupPoint, metrics.OutcomeMiss).Inc()
		return nil, fmt.Errorf("%w: (%.6f, %.6f)", ErrRegionNotFound, point.Lon(), point.Lat())
	}
	metrics.LookupsTotal.WithLabelValues(metrics.LookupPoint, metrics.OutcomeHit).Inc()

	return u.toSearchResult(region), nil
}

func (u *mapUseCaseImpl) RegionsInBounds(ctx context.Context, minLng, minLat, maxLng, maxLat float64) (*model.RegionsInBoundsResponse, error) {
	bound, err := helper.NewBoundingBox(minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBounds, err)
	}

	idx, ok := u.catalog.Regions()
	if !ok {
		return nil, ErrAssetsUnavailable
	}

	matched := helper.RegionsInBound(idx.Regions(), bound)
	refs := make([]model.RegionRef, 0, len(matched))
	for i := range matched {
		refs = append(refs, *matched[i].Ref())
	}

	return &model.RegionsInBoundsResponse{
		Bounds:  helper.BoundToWKT(bound),
		Count:   len(refs),
		Regions: refs,
	}, nil
}

func (u *mapUseCaseImpl) LookupZip(ctx context.Context, rawZip string) (*model.ZipEntry, error) {
	zip, err := service.ParseZip(rawZip)
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(metrics.LookupZip, metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	entries, ok := u.catalog.ZipEntries()
	if !ok {
		return nil, ErrAssetsUnavailable
	}

	entry, found := service.LookupZip(entries, zip)
	if !found {
		metrics.LookupsTotal.WithLabelValues(metrics.LookupZip, metrics.OutcomeMiss).Inc()
		return nil, fmt.Errorf("%w: %d", ErrZipNotFound, zip)
	}
	metrics.LookupsTotal.WithLabelValues(metrics.LookupZip, metrics.OutcomeHit).Inc()

	matched := *entry
	return &matched, nil
}

func (u *mapUseCaseImpl) Centroid(req *model.CentroidRequest) *model.CentroidResponse {
	pairs := service.ParseCoordinatePairs(req.Coordinates)
	resp := &model.CentroidResponse{ValidPairs: service.CountValidPairs(pairs)}
	if center, ok := service.CalculateCentroid(pairs); ok {
		resp.Center = &center
	}
	return resp
}

func (u *mapUseCaseImpl) AssetStatus() *model.AssetStatusResponse {
	return &model.AssetStatusResponse{Assets: u.catalog.Status()}
}

// focusOnRegion 地域を検索して次のビューポートを決める（保存はしない）
func (u *mapUseCaseImpl) focusOnRegion(current model.Viewport, name, stateName string) *model.FocusResult {
	idx, ok := u.catalog.Regions()
	if !ok {
		log.Printf("⚠️ 地域境界が未ロードのためフォーカスできません (%s)", name)
		return unchanged(current, model.ReasonAssetsUnavailable)
	}

	region, found := idx.Match(name, stateName)
	if !found {
		log.Printf("⚠️ 地域が見つかりません: name=%q state=%q", name, stateName)
		metrics.LookupsTotal.WithLabelValues(metrics.LookupRegion, metrics.OutcomeMiss).Inc()
		return unchanged(current, model.ReasonRegionNotFound)
	}
	metrics.LookupsTotal.WithLabelValues(metrics.LookupRegion, metrics.OutcomeHit).Inc()

	if !service.HasUsableGeometry(region.Geometry) {
		log.Printf("⚠️ 地域 %s (%s) の座標データが空または不正です", region.Name, region.ID)
		return unchanged(current, model.ReasonMalformedGeometry)
	}

	center, ok := service.GeometryCentroid(region.Geometry, u.centroidMode)
	if !ok {
		log.Printf("⚠️ 地域 %s (%s) の中心点を計算できません", region.Name, region.ID)
		return unchanged(current, model.ReasonNoCentroid)
	}

	return &model.FocusResult{
		Viewport: u.viewport.Focus(current, center, region.Ref()),
		Changed:  true,
		Reason:   model.ReasonFocused,
	}
}

// commit 変化があった場合のみビューポートを保存する
func (u *mapUseCaseImpl) commit(ctx context.Context, sessionID string, result *model.FocusResult) (*model.FocusResult, error) {
	metrics.FocusTotal.WithLabelValues(result.Reason).Inc()
	if !result.Changed {
		return result, nil
	}
	if err := u.sessions.Save(ctx, sessionID, result.Viewport); err != nil {
		return nil, fmt.Errorf("ビューポートの保存に失敗: %w", err)
	}
	return result, nil
}

func (u *mapUseCaseImpl) loadSession(ctx context.Context, sessionID string) (model.Viewport, error) {
	current, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return model.Viewport{}, fmt.Errorf("セッション %s の取得に失敗: %w", sessionID, err)
	}
	return *current, nil
}

func (u *mapUseCaseImpl) toSearchResult(region *model.Region) *model.RegionSearchResult {
	result := &model.RegionSearchResult{
		Region: *region.Ref(),
		WKT:    helper.GeometryToWKT(region.Geometry),
	}
	if center, ok := service.GeometryCentroid(region.Geometry, u.centroidMode); ok {
		result.Centroid = &center
	}
	if region.Geometry != nil {
		feature := geojson.NewFeature(region.Geometry)
		feature.ID = region.ID
		feature.Properties["name"] = region.Name
		feature.Properties["state_name"] = region.StateName
		result.Feature = feature
	}
	return result
}

func unchanged(current model.Viewport, reason string) *model.FocusResult {
	return &model.FocusResult{
		Viewport: current,
		Changed:  false,
		Reason:   reason,
	}
}
