package importer

import (
	"github.com/kuninet/gravity-household-app/internal/parser"
)

// 事件类型：progress 若干条，最后恰好一条 complete 或 error
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// Event 导入进度事件，按发生顺序逐条推给调用方（NDJSON 一行一条）
type Event struct {
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	Data    *AnalyzeResult  `json:"data,omitempty"`    // Analyze 的终端事件负载
	Results *ExecuteResults `json:"results,omitempty"` // Execute 的终端事件负载
	Error   string          `json:"error,omitempty"`
}

// AnalyzeResult Analyze 阶段的结果：会话令牌 + 识别摘要
type AnalyzeResult struct {
	Token   string  `json:"token"`
	Summary Summary `json:"summary"`
}

// Summary 工作簿识别摘要
type Summary struct {
	Daily []parser.DailySheetSummary `json:"daily"`
	Fixed []parser.FixedSheetSummary `json:"fixed"`
}

// ExecuteResults Execute 阶段写入的行数统计
type ExecuteResults struct {
	Daily int `json:"daily"`
	Fixed int `json:"fixed"`
}

func progressEvent(message string) Event {
	return Event{Type: EventProgress, Message: message}
}

func errorEvent(err error) Event {
	return Event{Type: EventError, Error: err.Error()}
}
