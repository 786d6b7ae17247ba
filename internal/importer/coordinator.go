package importer

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/kuninet/gravity-household-app/internal/parser"
)

// Coordinator 导入协调器：Analyze / Execute 两阶段协议
type Coordinator struct {
	reconciler *Reconciler
	sessions   *SessionStore
}

// NewCoordinator 创建导入协调器
func NewCoordinator(store TxStore, sessions *SessionStore) *Coordinator {
	return &Coordinator{
		reconciler: NewReconciler(store),
		sessions:   sessions,
	}
}

// Analyze 只读分析已存储的工作簿，返回进度通道
// 成功：文件保留，等待 Execute；失败：立即删除文件。
// 通道上的事件严格有序，最后恰好一条终端事件。
func (c *Coordinator) Analyze(storedPath string) <-chan Event {
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		c.doAnalyze(storedPath, events)
	}()

	return events
}

func (c *Coordinator) doAnalyze(storedPath string, events chan<- Event) {
	token := filepath.Base(storedPath)

	events <- progressEvent("Excelファイルを読み込み中... (ファイルサイズにより時間がかかります)")

	file, err := excelize.OpenFile(storedPath)
	if err != nil {
		log.Printf("[Analyze] open workbook failed: %v", err)
		c.sessions.Remove(token)
		events <- errorEvent(fmt.Errorf("%w: %v", ErrInvalidUpload, err))
		return
	}
	defer file.Close()

	events <- progressEvent("シート構成を解析中...")

	summary := Summary{
		Daily: []parser.DailySheetSummary{},
		Fixed: []parser.FixedSheetSummary{},
	}
	dailyParser := parser.NewDailyParser(file)

	for _, sheetName := range file.GetSheetList() {
		kind := parser.Classify(sheetName)

		switch {
		case kind.Type == parser.SheetTypeDailyLedger:
			events <- progressEvent(fmt.Sprintf("%s を解析中...", sheetName))

			count, err := dailyParser.Count(sheetName, kind.Year)
			if err != nil {
				log.Printf("[Analyze] count sheet %s failed: %v", sheetName, err)
				c.sessions.Remove(token)
				events <- errorEvent(err)
				return
			}
			if count > 0 {
				summary.Daily = append(summary.Daily, parser.DailySheetSummary{
					Sheet: sheetName,
					Count: count,
					Year:  kind.Year,
					Month: kind.Month,
				})
			}

		case kind.IsFixed():
			events <- progressEvent(fmt.Sprintf("%s (固定費) を解析中...", sheetName))
			summary.Fixed = append(summary.Fixed, parser.FixedSheetSummary{
				Sheet: sheetName,
				Year:  kind.Year,
			})
		}
		// Unknown はスキップ
	}

	events <- Event{
		Type: EventComplete,
		Data: &AnalyzeResult{Token: token, Summary: summary},
	}
}

// Execute 执行导入，返回进度通道
// 两遍有序处理：先全部日次表，再全部固定费表（两种布局）。
// 固定费的调和必须是其分类的最后写入者，交错处理会让日次表的
// 宽范围删除吞掉同一轮已写入的固定费记录。
// 结束后（无论成败）删除会话文件：会话一次性使用。
func (c *Coordinator) Execute(token string, targetYear int) <-chan Event {
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		c.doExecute(token, targetYear, events)
	}()

	return events
}

func (c *Coordinator) doExecute(token string, targetYear int, events chan<- Event) {
	storedPath, err := c.sessions.Resolve(token)
	if err != nil {
		events <- errorEvent(err)
		return
	}
	defer c.sessions.Remove(token)

	events <- progressEvent("データベースへの書き込みを開始します...")

	file, err := excelize.OpenFile(storedPath)
	if err != nil {
		log.Printf("[Execute] open workbook failed: %v", err)
		events <- errorEvent(fmt.Errorf("%w: %v", ErrInvalidUpload, err))
		return
	}
	defer file.Close()

	results := &ExecuteResults{}
	sheetList := file.GetSheetList()

	// 第一遍：日次表
	for _, sheetName := range sheetList {
		kind := parser.Classify(sheetName)
		if kind.Type != parser.SheetTypeDailyLedger {
			continue
		}
		if targetYear != 0 && kind.Year != targetYear {
			continue
		}

		events <- progressEvent(fmt.Sprintf("%s のデータを処理中...", sheetName))

		if err := c.executeDaily(file, kind, results); err != nil {
			log.Printf("[Execute] daily sheet %s failed: %v", sheetName, err)
			events <- errorEvent(err)
			return
		}
	}

	// 第二遍：固定费表（标准 + 合计两种布局）
	for _, sheetName := range sheetList {
		kind := parser.Classify(sheetName)
		if !kind.IsFixed() {
			continue
		}
		if targetYear != 0 && kind.Year != targetYear {
			continue
		}

		events <- progressEvent(fmt.Sprintf("%s (固定費) を処理中...", sheetName))

		if err := c.executeFixed(file, kind, results); err != nil {
			log.Printf("[Execute] fixed sheet %s failed: %v", sheetName, err)
			events <- errorEvent(err)
			return
		}
	}

	events <- Event{Type: EventComplete, Results: results}
}

// executeDaily 日次表：该表对应会计月份的全部分类整体覆盖
func (c *Coordinator) executeDaily(file *excelize.File, kind parser.SheetKind, results *ExecuteResults) error {
	records, err := parser.NewDailyParser(file).Extract(kind.SheetName, kind.Year)
	if err != nil {
		return err
	}

	scope := Scope{FiscalMonth: fmt.Sprintf("%04d-%02d", kind.Year, kind.Month)}
	if err := c.reconciler.Reconcile(scope, records); err != nil {
		return err
	}

	results.Daily += len(records)
	return nil
}

// executeFixed 固定费表：逐月调和，范围仅限该布局能写的分类
func (c *Coordinator) executeFixed(file *excelize.File, kind parser.SheetKind, results *ExecuteResults) error {
	layout, ok := parser.LayoutFor(kind.Type)
	if !ok {
		return fmt.Errorf("no layout for sheet type %s", kind.Type)
	}

	months, err := parser.NewFixedParser(file, layout).Extract(kind.SheetName, kind.Year)
	if err != nil {
		return err
	}

	codes := layout.Codes()
	for _, m := range months {
		scope := Scope{FiscalMonth: m.FiscalMonth, Codes: codes}
		if err := c.reconciler.Reconcile(scope, m.Records); err != nil {
			return err
		}
		results.Fixed += len(m.Records)
	}
	return nil
}
