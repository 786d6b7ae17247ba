package parser

import (
	"strconv"
	"strings"
)

// CleanAmount 清洗金额字符串并解析为整数
// 去掉货币符号、千位分隔符等一切非数字字符（负号保留），
// 如 "¥1,200" -> 1200。无法解析时 ok 为 false。
func CleanAmount(raw string) (amount int64, ok bool) {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '-' {
			sb.WriteRune(r)
		}
	}

	cleaned := sb.String()
	if cleaned == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
