package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kuninet/gravity-household-app/internal/model"
)

const (
	// fixedHeaderRows 固定费表的表头行数，数据从第 4 行开始
	fixedHeaderRows = 3
	// fixedMaxRows 一张固定费表只描述一个年度：1 行 1 个月，最多 12 行
	fixedMaxRows = 12
)

// FixedLayout 固定费表布局：列 -> 分类编码的静态映射
// 两种布局共用同一套提取流程，新增布局只需再加一个 FixedLayout。
type FixedLayout struct {
	// Columns 直接单列映射（列下标 -> 分类编码）
	Columns map[int]int
	// SumColumns 需要合并的列（多列金额求和后记为 SumCode）
	SumColumns []int
	SumCode    int
}

// StandardLayout "yyyy年公共料金等" 的列布局
// B 家賃 / C 電気 / D ガス / E 食洗機 / F 水道 / G 固定電話 / H 携帯 / I 小遣い / J 保険
var StandardLayout = FixedLayout{
	Columns: map[int]int{
		1: 604, // B 家賃
		2: 601, // C 電気
		3: 603, // D ガス一般
		4: 606, // E 食洗機
		5: 602, // F 水道
		6: 605, // G 固定電話・フレッツ
		7: 607, // H 携帯電話
		8: 901, // I 小遣い
		9: 608, // J 保険
	},
}

// AlternativeLayout "yyyy合計" 的列布局
// ガス在原账本里拆成两项（I/J 列），合并为 603 一条记录。
// 食洗機(606) と保険(608) はこのレイアウトに存在しないため対象外。
var AlternativeLayout = FixedLayout{
	Columns: map[int]int{
		2: 604, // C 家賃
		3: 601, // D 電気
		4: 602, // E 水道
		5: 605, // F 固定電話・フレッツ
		6: 607, // G 携帯電話
		7: 901, // H 小遣い
	},
	SumColumns: []int{8, 9}, // I + J
	SumCode:    603,         // ガス一般
}

// Codes 该布局能写入的全部分类编码（覆盖删除的范围）
// 布局覆盖不到的分类绝不删除：没有替代数据就不动原有记录。
func (l FixedLayout) Codes() []int {
	codes := make([]int, 0, len(l.Columns)+1)
	for _, code := range l.Columns {
		codes = append(codes, code)
	}
	if l.SumCode != 0 {
		codes = append(codes, l.SumCode)
	}
	return codes
}

// LayoutFor 布局分发表：Sheet 类型 -> 布局
func LayoutFor(t SheetType) (FixedLayout, bool) {
	switch t {
	case SheetTypeFixedStd:
		return StandardLayout, true
	case SheetTypeFixedAlt:
		return AlternativeLayout, true
	default:
		return FixedLayout{}, false
	}
}

// FixedParser 固定费表解析器（两种布局共用）
type FixedParser struct {
	file   *excelize.File
	layout FixedLayout
}

// NewFixedParser 创建固定费表解析器
func NewFixedParser(file *excelize.File, layout FixedLayout) *FixedParser {
	return &FixedParser{file: file, layout: layout}
}

// MonthRecords 某个月份行提取出的记录
type MonthRecords struct {
	Month       int
	FiscalMonth string
	Records     []*model.Transaction
}

// Extract 按月份行解析固定费表
// 金额清洗后 <= 0 视为无记录。记录日期统一记为会计月份 1 日。
func (p *FixedParser) Extract(sheetName string, year int) ([]MonthRecords, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	if len(rows) <= fixedHeaderRows {
		return nil, nil
	}

	var months []MonthRecords
	for idx, row := range rows[fixedHeaderRows:] {
		if idx >= fixedMaxRows {
			break
		}

		month := idx + 1
		fiscalMonth := fmt.Sprintf("%04d-%02d", year, month)
		date := fiscalMonth + "-01"

		var records []*model.Transaction
		for col, code := range p.layout.Columns {
			amount, ok := CleanAmount(cell(row, col))
			if !ok || amount <= 0 {
				continue
			}
			records = append(records, fixedRecord(date, fiscalMonth, amount, code))
		}

		// 合并列（ガス等拆分项）求和
		if len(p.layout.SumColumns) > 0 {
			var total int64
			for _, col := range p.layout.SumColumns {
				if amount, ok := CleanAmount(cell(row, col)); ok && amount > 0 {
					total += amount
				}
			}
			if total > 0 {
				records = append(records, fixedRecord(date, fiscalMonth, total, p.layout.SumCode))
			}
		}

		months = append(months, MonthRecords{Month: month, FiscalMonth: fiscalMonth, Records: records})
	}
	return months, nil
}

func fixedRecord(date, fiscalMonth string, amount int64, code int) *model.Transaction {
	return model.NewExpense(date, fiscalMonth, amount, code, "ExcelImport", "固定費")
}
