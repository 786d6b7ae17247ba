package parser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kuninet/gravity-household-app/internal/fiscal"
	"github.com/kuninet/gravity-household-app/internal/model"
)

const (
	// dailyHeaderRows 日次表的表头行数，数据从第 12 行开始
	dailyHeaderRows = 11
	// maxConsecutiveEmpty 日付列连续空行达到该值时停止扫描
	maxConsecutiveEmpty = 10
)

// 日次表列布局：A 日付 / B 分类编码 / C 金额 / E 摘要 / F 备注
const (
	colDailyDate   = 0
	colDailyCode   = 1
	colDailyAmount = 2
	colDailyDesc   = 4
	colDailyMemo   = 5
)

// DailyParser 日次家計簿表解析器
type DailyParser struct {
	file *excelize.File
}

// NewDailyParser 创建日次表解析器
func NewDailyParser(file *excelize.File) *DailyParser {
	return &DailyParser{file: file}
}

// Extract 解析日次表为取引记录
// year 取自表名识别结果：日付单元格的年份一律强制改写为表名年份
// （历史数据中存在操作员把年份敲错的已知情况），改写后再推导会计月份。
func (p *DailyParser) Extract(sheetName string, year int) ([]*model.Transaction, error) {
	var records []*model.Transaction
	err := p.scan(sheetName, year, func(t *model.Transaction) {
		records = append(records, t)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count 只统计有效行数，不生成记录（Analyze 阶段用）
// 与 Extract 共用同一套行有效性判定，两个阶段的计数永远一致。
func (p *DailyParser) Count(sheetName string, year int) (int, error) {
	count := 0
	err := p.scan(sheetName, year, func(*model.Transaction) {
		count++
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// scan 扫描数据行，对每个有效行调用 fn
func (p *DailyParser) scan(sheetName string, year int, fn func(*model.Transaction)) error {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	if len(rows) <= dailyHeaderRows {
		return nil
	}

	consecutiveEmpty := 0
	for _, row := range rows[dailyHeaderRows:] {
		if cell(row, colDailyDate) == "" {
			consecutiveEmpty++
			if consecutiveEmpty >= maxConsecutiveEmpty {
				break
			}
			continue
		}
		consecutiveEmpty = 0

		if t := p.evalRow(row, year); t != nil {
			fn(t)
		}
	}
	return nil
}

// evalRow 判定并转换单行，无效行返回 nil（跳过，不中断整表）
func (p *DailyParser) evalRow(row []string, year int) *model.Transaction {
	dateCell := cell(row, colDailyDate)
	codeCell := cell(row, colDailyCode)
	amountCell := cell(row, colDailyAmount)

	if codeCell == "" || amountCell == "" {
		return nil
	}

	code, err := strconv.Atoi(codeCell)
	if err != nil {
		return nil
	}

	amount, ok := CleanAmount(amountCell)
	if !ok {
		return nil
	}

	date, err := fiscal.ParseDateCell(dateCell)
	if err != nil {
		return nil
	}

	// 年份改写为表名年份后重新组日期
	date = date.AddDate(year-date.Year(), 0, 0)
	dateStr := date.Format("2006-01-02")

	return model.NewExpense(dateStr, fiscal.MonthKey(date), amount, code,
		cell(row, colDailyDesc), cell(row, colDailyMemo))
}

// cell 安全取列值（GetRows 会裁掉行尾的空单元格）
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
