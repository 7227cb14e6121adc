package service

import (
	"github.com/paulmach/orb"

	"PestPro-App/internal/domain/model"
)

// ViewportEventKind ビューポートを更新するイベントの種類
type ViewportEventKind int

const (
	// EventFocus 指定座標に注目する
	EventFocus ViewportEventKind = iota
	// EventReset 全米表示に戻す
	EventReset
)

// ViewportEvent ビューポート更新イベント
type ViewportEvent struct {
	Kind   ViewportEventKind
	Center orb.Point
	Region *model.RegionRef
}

// ApplyViewportEvent 現在の状態とイベントから次の状態を返す
// 入力の状態は変更しない。未知のイベントでは現在の状態をそのまま返す
func ApplyViewportEvent(current model.Viewport, ev ViewportEvent) model.Viewport {
	switch ev.Kind {
	case EventFocus:
		return model.Viewport{
			Center: ev.Center,
			Zoom:   model.FocusZoom,
			Mode:   model.ViewportFocused,
			Region: ev.Region,
		}
	case EventReset:
		return model.OverviewViewport()
	}
	return current
}

// ViewportController ビューポートの状態遷移を提供する
type ViewportController interface {
	// Focus 指定座標を中心に拡大表示する
	Focus(current model.Viewport, point orb.Point, region *model.RegionRef) model.Viewport

	// Reset 初期表示に戻す
	Reset() model.Viewport
}

// viewportControllerImpl ViewportControllerの実装
type viewportControllerImpl struct{}

// NewViewportController ViewportControllerの新しいインスタンスを作成
func NewViewportController() ViewportController {
	return &viewportControllerImpl{}
}

func (c *viewportControllerImpl) Focus(current model.Viewport, point orb.Point, region *model.RegionRef) model.Viewport {
	return ApplyViewportEvent(current, ViewportEvent{Kind: EventFocus, Center: point, Region: region})
}

func (c *viewportControllerImpl) Reset() model.Viewport {
	return ApplyViewportEvent(model.Viewport{}, ViewportEvent{Kind: EventReset})
}
