package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kuninet/gravity-household-app/internal/config"
	"github.com/kuninet/gravity-household-app/internal/importer"
	"github.com/kuninet/gravity-household-app/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.Store
	sessions    *importer.SessionStore
	coordinator *importer.Coordinator
	ocr         config.OCRConfig
}

// NewHandler 创建 API 处理器
func NewHandler(s *store.Store, sessions *importer.SessionStore, ocr config.OCRConfig) *Handler {
	return &Handler{
		store:       s,
		sessions:    sessions,
		coordinator: importer.NewCoordinator(s, sessions),
		ocr:         ocr,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// ヘルスチェック
	router.GET("/health", h.Health)

	// 取引 CRUD
	router.GET("/transactions", h.ListTransactions)
	router.POST("/transactions", h.CreateTransaction)
	router.PUT("/transactions/:id", h.UpdateTransaction)
	router.DELETE("/transactions/:id", h.DeleteTransaction)
	router.POST("/transactions/batch_delete", h.BatchDeleteTransactions)

	// 分类目录（只读）
	router.GET("/categories", h.ListCategories)

	// 月次・年次集計
	router.GET("/summary", h.GetSummary)
	router.GET("/analysis/yearly", h.GetYearlyAnalysis)

	// 固定費画面
	router.GET("/fixed_costs/matrix", h.GetFixedCostMatrix)
	router.POST("/fixed_costs/batch_update", h.BatchUpdateFixedCosts)

	// Excel 导入（两阶段，流式进度）
	router.POST("/import/analyze", h.AnalyzeImport)
	router.POST("/import/execute", h.ExecuteImport)

	// バックアップ
	router.GET("/backup/export", h.ExportBackup)
	router.POST("/backup/restore", h.RestoreBackup)

	// レシート OCR
	router.POST("/ocr/analyze", h.AnalyzeReceipt)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "message": "Household Account App API is running"})
}
