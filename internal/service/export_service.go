package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/wellnest/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

// ErrExportInvalid 当导出参数非法时返回
var ErrExportInvalid = errors.New("invalid export request")

// 导出格式
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatHTML = "html"
)

var (
	exportMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	exportSanitizer = bluemonday.UGCPolicy()
)

// ExportResult 是导出响应：Rows 用于 JSON，Data 用于 CSV/HTML 文本
type ExportResult struct {
	Format string
	Count  int
	Rows   []map[string]any
	Data   string
}

// ExportService 负责把用户数据导出为 JSON、CSV 或渲染后的 HTML
type ExportService struct {
	db *gorm.DB
}

// NewExportService 构造 ExportService
func NewExportService(gdb *gorm.DB) *ExportService {
	return &ExportService{db: gdb}
}

// Journal 导出日记。HTML 格式把 Markdown 内容渲染并消毒后输出。
func (s *ExportService) Journal(userID uint, format string, start, end *time.Time) (*ExportResult, error) {
	if format != FormatJSON && format != FormatCSV && format != FormatHTML {
		return nil, fmt.Errorf("%w: unsupported format %s", ErrExportInvalid, format)
	}

	query := s.db.Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("created_at >= ?", normalizeToDate(*start))
	}
	if end != nil {
		query = query.Where("created_at < ?", normalizeToDate(*end).AddDate(0, 0, 1))
	}

	var entries []db.JournalEntry
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("export journal: %w", err)
	}

	switch format {
	case FormatJSON:
		rows := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, map[string]any{
				"id":              entry.ID,
				"content":         entry.Content,
				"sentiment_score": entry.SentimentScore,
				"emotion_label":   entry.EmotionLabel,
				"risk_flag":       entry.RiskFlag,
				"created_at":      entry.CreatedAt.Format(time.RFC3339),
			})
		}
		return &ExportResult{Format: format, Count: len(rows), Rows: rows}, nil

	case FormatCSV:
		records := [][]string{{"id", "content", "sentiment_score", "emotion_label", "risk_flag", "created_at"}}
		for _, entry := range entries {
			records = append(records, []string{
				strconv.FormatUint(uint64(entry.ID), 10),
				entry.Content,
				strconv.FormatFloat(entry.SentimentScore, 'f', 3, 64),
				entry.EmotionLabel,
				strconv.FormatBool(entry.RiskFlag),
				entry.CreatedAt.Format(time.RFC3339),
			})
		}
		data, err := writeCSV(records)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Format: format, Count: len(entries), Data: data}, nil

	default:
		var buf bytes.Buffer
		buf.WriteString("<section class=\"journal-export\">\n")
		for _, entry := range entries {
			var rendered bytes.Buffer
			if err := exportMarkdown.Convert([]byte(entry.Content), &rendered); err != nil {
				return nil, fmt.Errorf("render journal entry: %w", err)
			}
			buf.WriteString(fmt.Sprintf("<article data-entry-id=\"%d\" data-emotion=\"%s\">\n", entry.ID, entry.EmotionLabel))
			buf.WriteString(fmt.Sprintf("<time>%s</time>\n", entry.CreatedAt.Format("2006-01-02")))
			buf.Write(exportSanitizer.SanitizeBytes(rendered.Bytes()))
			buf.WriteString("\n</article>\n")
		}
		buf.WriteString("</section>\n")
		return &ExportResult{Format: format, Count: len(entries), Data: buf.String()}, nil
	}
}

// Medications 导出用药计划及全部打卡记录。
func (s *ExportService) Medications(userID uint, format string) (*ExportResult, error) {
	if format != FormatJSON && format != FormatCSV {
		return nil, fmt.Errorf("%w: unsupported format %s", ErrExportInvalid, format)
	}

	var medications []db.Medication
	if err := s.db.Where("user_id = ?", userID).Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("export medications: %w", err)
	}

	var logs []db.MedicationLog
	if len(medications) > 0 {
		medIDs := make([]uint, 0, len(medications))
		for _, m := range medications {
			medIDs = append(medIDs, m.ID)
		}
		if err := s.db.Where("medication_id IN ?", medIDs).
			Order("taken_date ASC").
			Find(&logs).Error; err != nil {
			return nil, fmt.Errorf("export medication logs: %w", err)
		}
	}

	if format == FormatJSON {
		rows := make([]map[string]any, 0, len(logs))
		names := make(map[uint]string, len(medications))
		for _, m := range medications {
			names[m.ID] = m.Name
		}
		for _, log := range logs {
			rows = append(rows, map[string]any{
				"medication_id": log.MedicationID,
				"medication":    names[log.MedicationID],
				"taken_date":    log.TakenDate.Format("2006-01-02"),
				"taken":         log.Taken,
			})
		}
		return &ExportResult{Format: format, Count: len(rows), Rows: rows}, nil
	}

	records := [][]string{{"medication_id", "taken_date", "taken"}}
	for _, log := range logs {
		records = append(records, []string{
			strconv.FormatUint(uint64(log.MedicationID), 10),
			log.TakenDate.Format("2006-01-02"),
			strconv.FormatBool(log.Taken),
		})
	}
	data, err := writeCSV(records)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Format: format, Count: len(logs), Data: data}, nil
}

// Fitness 导出运动记录。
func (s *ExportService) Fitness(userID uint, format string, start, end *time.Time) (*ExportResult, error) {
	if format != FormatJSON && format != FormatCSV {
		return nil, fmt.Errorf("%w: unsupported format %s", ErrExportInvalid, format)
	}

	query := s.db.Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("log_date >= ?", normalizeToDate(*start))
	}
	if end != nil {
		query = query.Where("log_date <= ?", normalizeToDate(*end))
	}

	var logs []db.FitnessLog
	if err := query.Order("log_date ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("export fitness logs: %w", err)
	}

	if format == FormatJSON {
		rows := make([]map[string]any, 0, len(logs))
		for _, log := range logs {
			rows = append(rows, map[string]any{
				"log_date":           log.LogDate.Format("2006-01-02"),
				"activity_completed": log.ActivityCompleted,
				"steps":              log.Steps,
				"minutes_exercised":  log.MinutesExercised,
				"intensity":          log.Intensity,
			})
		}
		return &ExportResult{Format: format, Count: len(rows), Rows: rows}, nil
	}

	records := [][]string{{"log_date", "activity_completed", "steps", "minutes_exercised", "intensity"}}
	for _, log := range logs {
		records = append(records, []string{
			log.LogDate.Format("2006-01-02"),
			strconv.FormatBool(log.ActivityCompleted),
			strconv.Itoa(log.Steps),
			strconv.Itoa(log.MinutesExercised),
			log.Intensity,
		})
	}
	data, err := writeCSV(records)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Format: format, Count: len(logs), Data: data}, nil
}

func writeCSV(records [][]string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return buf.String(), nil
}
