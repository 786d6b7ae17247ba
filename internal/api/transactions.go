package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kuninet/gravity-household-app/internal/fiscal"
	"github.com/kuninet/gravity-household-app/internal/model"
)

// transactionRequest 取引的创建/更新请求体
type transactionRequest struct {
	Date         string `json:"date"`
	Amount       int64  `json:"amount"`
	Type         string `json:"type"`
	CategoryCode *int   `json:"category_code"`
	Description  string `json:"description"`
	Memo         string `json:"memo"`
}

// toTransaction 校验并换算成模型（fiscal_month 由日付导出，不信任客户端）
func (r *transactionRequest) toTransaction() (*model.Transaction, string) {
	if r.Date == "" || r.Amount == 0 {
		return nil, "date and amount are required"
	}
	typ := r.Type
	if typ == "" {
		typ = model.TypeExpense
	}
	if typ != model.TypeExpense && typ != model.TypeIncome {
		return nil, "type must be EXPENSE or INCOME"
	}

	fiscalMonth, err := fiscal.MonthKeyOfDate(r.Date)
	if err != nil {
		return nil, "invalid date format"
	}

	return &model.Transaction{
		Date:         r.Date,
		FiscalMonth:  fiscalMonth,
		Amount:       r.Amount,
		Type:         typ,
		CategoryCode: r.CategoryCode,
		Description:  r.Description,
		Memo:         r.Memo,
	}, ""
}

// ListTransactions 查询取引一览
// GET /api/transactions?month=YYYY-MM
func (h *Handler) ListTransactions(c *gin.Context) {
	list, err := h.store.ListTransactions(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		list = []*model.Transaction{}
	}
	c.JSON(http.StatusOK, list)
}

// CreateTransaction 新增取引
// POST /api/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, msg := req.toTransaction()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	id, err := h.store.InsertTransaction(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "fiscal_month": t.FiscalMonth})
}

// UpdateTransaction 更新取引
// PUT /api/transactions/:id
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, msg := req.toTransaction()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	t.ID = id

	affected, err := h.store.UpdateTransaction(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": affected})
}

// DeleteTransaction 删除取引
// DELETE /api/transactions/:id
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	affected, err := h.store.DeleteTransaction(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": affected})
}

// BatchDeleteTransactions 批量删除取引
// POST /api/transactions/batch_delete
func (h *Handler) BatchDeleteTransactions(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids are required"})
		return
	}

	affected, err := h.store.DeleteTransactions(req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": affected})
}
