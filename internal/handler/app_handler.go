package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName ヘルスチェックで返すサービス名
const ServiceName = "PestPro-App"

// AppHandler サービス共通のエンドポイント
type AppHandler struct {
	members []string
}

// NewAppHandler 新しいAppHandlerインスタンスを作成
func NewAppHandler(members []string) *AppHandler {
	return &AppHandler{members: members}
}

// Home GET /
func (h *AppHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to PestPro-App!")
}

// Health GET /api/health
func (h *AppHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// Members GET /members
func (h *AppHandler) Members(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"members": h.members,
	})
}
