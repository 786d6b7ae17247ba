package parser

// SheetType Sheet 类型
type SheetType string

const (
	SheetTypeDailyLedger SheetType = "daily_ledger"  // 日次家計簿 "2024年5月"
	SheetTypeFixedStd    SheetType = "fixed_std"     // 固定费标准表 "2024年公共料金等"
	SheetTypeFixedAlt    SheetType = "fixed_alt"     // 固定费合计表 "2024合計"
	SheetTypeUnknown     SheetType = "unknown"
)

// SheetKind Sheet 识别结果
// 识别只看表名，不看内容：源工作簿没有任何结构元数据，
// 名称不完全匹配时一律按 Unknown 跳过，绝不模糊匹配。
type SheetKind struct {
	SheetName string    `json:"sheetName"`
	Type      SheetType `json:"type"`
	Year      int       `json:"year"`
	Month     int       `json:"month"` // 仅日次表有值
}

// IsFixed 是否固定费表（两种布局之一）
func (k SheetKind) IsFixed() bool {
	return k.Type == SheetTypeFixedStd || k.Type == SheetTypeFixedAlt
}

// DailySheetSummary 日次表解析摘要（Analyze 阶段返回）
type DailySheetSummary struct {
	Sheet string `json:"sheet"`
	Count int    `json:"count"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// FixedSheetSummary 固定费表摘要（Analyze 阶段返回）
type FixedSheetSummary struct {
	Sheet string `json:"sheet"`
	Year  int    `json:"year"`
}
