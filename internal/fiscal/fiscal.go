package fiscal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate 日付として解釈できない入力
var ErrInvalidDate = errors.New("invalid date")

// MonthKey 计算日期所属的会计月份 (YYYY-MM)
// 会计月份从上个自然月的 23 日开始，到当月 22 日结束：
// 日 >= 23 归入下一个自然月，12 月 23 日起归入次年 1 月。
// 只看年月日，忽略时分秒。
func MonthKey(t time.Time) string {
	y, m, d := t.Date()
	month := int(m)
	if d >= 23 {
		month++
		if month > 12 {
			month = 1
			y++
		}
	}
	return fmt.Sprintf("%04d-%02d", y, month)
}

// MonthKeyOfDate 解析日期字符串后计算会计月份
func MonthKeyOfDate(s string) (string, error) {
	t, err := ParseDateCell(s)
	if err != nil {
		return "", err
	}
	return MonthKey(t), nil
}

// dateLayouts 日付セルで見かける表記
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"01-02-06",
	"1-2-06",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDateCell 解析 Excel 单元格中的日期
// 支持常见日期表记以及 Excel 序列值（1899-12-30 起算的天数）。
func ParseDateCell(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	// Excel 序列值
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return epoch.AddDate(0, 0, int(serial)), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// PrevMonthKey 返回上一个会计月份的键
func PrevMonthKey(key string) string {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return key
	}
	m--
	if m < 1 {
		m = 12
		y--
	}
	return fmt.Sprintf("%04d-%02d", y, m)
}

// MonthKeys 返回指定年份 1-12 月的全部键
func MonthKeys(year int) []string {
	keys := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		keys = append(keys, fmt.Sprintf("%04d-%02d", year, m))
	}
	return keys
}
