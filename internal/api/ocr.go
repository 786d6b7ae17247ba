package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

// receiptPrompt レシート読み取りの指示文
// 品目と金額だけを JSON で返させる。余計な文章や Markdown は禁止。
const receiptPrompt = `このレシート画像から購入品目を読み取ってください。
以下の JSON 形式のみで出力してください。Markdown のコードブロックや説明文は一切付けないでください。
{"store":"店名","date":"YYYY-MM-DD","items":[{"description":"品目名","amount":金額(整数,円)}],"total":合計金額}
読み取れない項目は null にしてください。`

// receiptResult OCR 解析結果
type receiptResult struct {
	Store string        `json:"store"`
	Date  string        `json:"date"`
	Items []receiptItem `json:"items"`
	Total *int64        `json:"total"`
}

type receiptItem struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// AnalyzeReceipt 用 Gemini 解析收据图片
// POST /api/ocr/analyze
func (h *Handler) AnalyzeReceipt(c *gin.Context) {
	if h.ocr.APIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OCR is not configured (GEMINI_API_KEY missing)"})
		return
	}

	uploaded, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}

	f, err := uploaded.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded image"})
		return
	}
	defer f.Close()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return
	}

	mimeType := uploaded.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	ctx := c.Request.Context()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      h.ocr.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create OCR client"})
		return
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: receiptPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     imageBytes,
					},
				},
			},
		},
	}

	// API キーによって使えるモデルが違うため、設定順に試す
	var rawText string
	var lastErr error
	for _, model := range h.ocr.Models {
		resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			log.Printf("[OCR] model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		if text := resp.Text(); text != "" {
			rawText = text
			break
		}
	}
	if rawText == "" {
		msg := "All OCR models failed"
		if lastErr != nil {
			msg = lastErr.Error()
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	var result receiptResult
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &result); err != nil {
		log.Printf("[OCR] unparseable model output: %q", rawText)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to parse OCR response"})
		return
	}
	if result.Items == nil {
		result.Items = []receiptItem{}
	}

	c.JSON(http.StatusOK, result)
}

// cleanModelJSON 剥掉模型输出中的 Markdown 代码块与前后杂文，只留 JSON 本体
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return strings.TrimSpace(s)
}
