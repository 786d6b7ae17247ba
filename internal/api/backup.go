package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/kuninet/gravity-household-app/internal/fiscal"
	"github.com/kuninet/gravity-household-app/internal/model"
)

// backupHeader CSV 备份的列定义（Excel で開ける Shift_JIS）
var backupHeader = []string{"id", "date", "fiscal_month", "amount", "type", "category_code", "description", "memo"}

// ExportBackup 导出全部取引为 Shift_JIS CSV
// GET /api/backup/export
func (h *Handler) ExportBackup(c *gin.Context) {
	records, err := h.store.ExportAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("gravity_backup_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=Shift_JIS")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(transform.NewWriter(c.Writer, japanese.ShiftJIS.NewEncoder()))
	if err := w.Write(backupHeader); err != nil {
		return
	}
	for _, t := range records {
		code := ""
		if t.CategoryCode != nil {
			code = strconv.Itoa(*t.CategoryCode)
		}
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			t.FiscalMonth,
			strconv.FormatInt(t.Amount, 10),
			t.Type,
			code,
			t.Description,
			t.Memo,
		}
		if err := w.Write(row); err != nil {
			return
		}
	}
	w.Flush()
}

// RestoreBackup 从 Shift_JIS CSV 覆盖恢复全部取引
// POST /api/backup/restore
func (h *Handler) RestoreBackup(c *gin.Context) {
	uploaded, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := uploaded.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	records, err := parseBackupCSV(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.RestoreAll(records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": len(records)})
}

// parseBackupCSV 解析备份 CSV（Shift_JIS → UTF-8）
// fiscal_month 列が空の行は日付から再計算する。
func parseBackupCSV(r io.Reader) ([]*model.Transaction, error) {
	reader := csv.NewReader(transform.NewReader(r, japanese.ShiftJIS.NewDecoder()))
	reader.FieldsPerRecord = len(backupHeader)

	// ヘッダ行
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("invalid backup file: missing header")
	}

	var records []*model.Transaction
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("invalid backup file at line %d", line)
		}

		t := &model.Transaction{
			Date:        row[1],
			FiscalMonth: row[2],
			Type:        row[4],
			Description: row[6],
			Memo:        row[7],
		}

		if t.ID, err = strconv.ParseInt(row[0], 10, 64); err != nil && row[0] != "" {
			return nil, fmt.Errorf("invalid id at line %d", line)
		}
		if t.Amount, err = strconv.ParseInt(row[3], 10, 64); err != nil {
			return nil, fmt.Errorf("invalid amount at line %d", line)
		}
		if row[5] != "" {
			code, err := strconv.Atoi(row[5])
			if err != nil {
				return nil, fmt.Errorf("invalid category_code at line %d", line)
			}
			t.CategoryCode = &code
		}
		if t.Type == "" {
			t.Type = model.TypeExpense
		}
		if t.FiscalMonth == "" {
			fm, err := fiscal.MonthKeyOfDate(t.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid date at line %d", line)
			}
			t.FiscalMonth = fm
		}

		records = append(records, t)
	}
	return records, nil
}
