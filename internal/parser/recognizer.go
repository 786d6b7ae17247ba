package parser

import (
	"regexp"
	"strconv"
)

// 表名的精确模式，前后锚定，避免把别的表误判成数据表
var (
	dailyPattern    = regexp.MustCompile(`^(\d{4})年(\d{1,2})月$`)
	fixedStdPattern = regexp.MustCompile(`^(\d{4})年公共料金等$`)
	fixedAltPattern = regexp.MustCompile(`^(\d{4})合計$`)
)

// Classify 识别 Sheet 类型
// 按表名精确结构匹配：
//   - "2024年5月"       -> 日次家計簿
//   - "2024年公共料金等" -> 固定费标准表
//   - "2024合計"        -> 固定费合计表
// 其余一律 Unknown。
func Classify(sheetName string) SheetKind {
	if m := dailyPattern.FindStringSubmatch(sheetName); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return SheetKind{SheetName: sheetName, Type: SheetTypeDailyLedger, Year: year, Month: month}
		}
	}

	if m := fixedStdPattern.FindStringSubmatch(sheetName); m != nil {
		year, _ := strconv.Atoi(m[1])
		return SheetKind{SheetName: sheetName, Type: SheetTypeFixedStd, Year: year}
	}

	if m := fixedAltPattern.FindStringSubmatch(sheetName); m != nil {
		year, _ := strconv.Atoi(m[1])
		return SheetKind{SheetName: sheetName, Type: SheetTypeFixedAlt, Year: year}
	}

	return SheetKind{SheetName: sheetName, Type: SheetTypeUnknown}
}
