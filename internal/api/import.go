package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuninet/gravity-household-app/internal/importer"
)

// AnalyzeImport 上传工作簿并做只读分析 (NDJSON 流式响应)
// POST /api/import/analyze
func (h *Handler) AnalyzeImport(c *gin.Context) {
	uploaded, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// 存储名由服务端生成，不信任原始文件名
	_, storedPath := h.sessions.NewSessionPath(uploaded.Filename)
	if err := c.SaveUploadedFile(uploaded, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file"})
		return
	}

	h.streamEvents(c, h.coordinator.Analyze(storedPath))
}

// executeRequest Execute 请求体
type executeRequest struct {
	Token      string      `json:"token"`
	TargetYear json.Number `json:"targetYear"`
}

// ExecuteImport 执行导入 (NDJSON 流式响应)
// POST /api/import/execute
func (h *Handler) ExecuteImport(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token provided"})
		return
	}

	// セッションが無ければストリームを始める前に 404 で返す
	if _, err := h.sessions.Resolve(req.Token); err != nil {
		if errors.Is(err, importer.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Import session expired or file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	targetYear := 0
	if req.TargetYear != "" {
		if n, err := req.TargetYear.Int64(); err == nil {
			targetYear = int(n)
		}
	}

	h.streamEvents(c, h.coordinator.Execute(req.Token, targetYear))
}

// streamEvents 把进度事件逐条写成 NDJSON 并立即 flush
// 写失败（调用方断开）后停止写出，但继续排空通道：
// 已提交的数据库写入不回滚，导入照常跑完。
func (h *Handler) streamEvents(c *gin.Context, events <-chan importer.Event) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	flusher, _ := c.Writer.(http.Flusher)
	writeFailed := false

	for event := range events {
		if writeFailed {
			continue
		}

		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("[Import] marshal event failed: %v", err)
			continue
		}

		if _, err := c.Writer.Write(append(data, '\n')); err != nil {
			log.Printf("[Import] client disconnected, stop streaming: %v", err)
			writeFailed = true
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
