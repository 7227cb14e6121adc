package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/domain/service"
	"PestPro-App/internal/usecase"
)

// MapHandler 地図ビューポートAPIのハンドラー
type MapHandler struct {
	mapUseCase usecase.MapUseCase
}

// NewMapHandler 新しいMapHandlerインスタンスを作成
func NewMapHandler(mapUseCase usecase.MapUseCase) *MapHandler {
	return &MapHandler{
		mapUseCase: mapUseCase,
	}
}

// CreateSession POST /api/sessions - 全米表示のセッションを作成
func (h *MapHandler) CreateSession(c *gin.Context) {
	resp, err := h.mapUseCase.CreateSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSession GET /api/sessions/:id - 現在のビューポートを取得
func (h *MapHandler) GetSession(c *gin.Context) {
	resp, err := h.mapUseCase.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FocusRegion POST /api/sessions/:id/focus/region - 地域名でフォーカス
func (h *MapHandler) FocusRegion(c *gin.Context) {
	var req model.FocusRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	result, err := h.mapUseCase.FocusByRegion(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FocusZip POST /api/sessions/:id/focus/zip - ZIPコードでフォーカス
func (h *MapHandler) FocusZip(c *gin.Context) {
	var req model.FocusZipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	result, err := h.mapUseCase.FocusByZip(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reset POST /api/sessions/:id/reset - 初期表示に戻す
func (h *MapHandler) Reset(c *gin.Context) {
	resp, err := h.mapUseCase.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SearchRegion GET /api/regions/search?name=&state= - 地域を検索
func (h *MapHandler) SearchRegion(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "name parameter is required",
		})
		return
	}

	result, err := h.mapUseCase.SearchRegion(c.Request.Context(), name, c.Query("state"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RegionAt GET /api/regions/at?lon=&lat= - 座標を含む地域を取得
func (h *MapHandler) RegionAt(c *gin.Context) {
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid lon value",
		})
		return
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid lat value",
		})
		return
	}

	result, err := h.mapUseCase.RegionAt(c.Request.Context(), orb.Point{lon, lat})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RegionsInBounds GET /api/regions/bbox?min_lng=&min_lat=&max_lng=&max_lat= - 表示範囲内の地域一覧
func (h *MapHandler) RegionsInBounds(c *gin.Context) {
	var coords [4]float64
	for i, key := range []string{"min_lng", "min_lat", "max_lng", "max_lat"} {
		v, err := strconv.ParseFloat(c.Query(key), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid " + key + " value",
			})
			return
		}
		coords[i] = v
	}

	resp, err := h.mapUseCase.RegionsInBounds(c.Request.Context(), coords[0], coords[1], coords[2], coords[3])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LookupZip GET /api/zips/:zip - ZIPコードの対応エントリを取得
func (h *MapHandler) LookupZip(c *gin.Context) {
	entry, err := h.mapUseCase.LookupZip(c.Request.Context(), c.Param("zip"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Centroid POST /api/centroid - 座標列の重心を計算
func (h *MapHandler) Centroid(c *gin.Context) {
	var req model.CentroidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, h.mapUseCase.Centroid(&req))
}

// AssetStatus GET /api/assets/status - アセットの読み込み状態
func (h *MapHandler) AssetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.mapUseCase.AssetStatus())
}

// respondError エラー種別からステータスコードを決める
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, usecase.ErrRegionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "region_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, usecase.ErrZipNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "zip_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidZip), errors.Is(err, usecase.ErrInvalidBounds):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
	case errors.Is(err, usecase.ErrAssetsUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "assets_unavailable",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
