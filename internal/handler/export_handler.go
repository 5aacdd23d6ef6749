package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wellnest/internal/service"
)

// ExportJournal 导出日记，format 支持 json、csv、html
func (a *API) ExportJournal(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatJSON)

	start, ok := parseOptionalDate(c.Query("start"))
	if !ok {
		respondError(c, http.StatusBadRequest, "start must be 2006-01-02")
		return
	}
	end, ok := parseOptionalDate(c.Query("end"))
	if !ok {
		respondError(c, http.StatusBadRequest, "end must be 2006-01-02")
		return
	}

	result, err := a.exports.Journal(currentUserID(c), format, start, end)
	if err != nil {
		handleExportError(c, err)
		return
	}

	respondExport(c, "journal", result)
}

// ExportMedications 导出用药打卡记录，format 支持 json、csv
func (a *API) ExportMedications(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatJSON)

	result, err := a.exports.Medications(currentUserID(c), format)
	if err != nil {
		handleExportError(c, err)
		return
	}

	respondExport(c, "medications", result)
}

// ExportFitness 导出运动记录，format 支持 json、csv
func (a *API) ExportFitness(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatJSON)

	start, ok := parseOptionalDate(c.Query("start"))
	if !ok {
		respondError(c, http.StatusBadRequest, "start must be 2006-01-02")
		return
	}
	end, ok := parseOptionalDate(c.Query("end"))
	if !ok {
		respondError(c, http.StatusBadRequest, "end must be 2006-01-02")
		return
	}

	result, err := a.exports.Fitness(currentUserID(c), format, start, end)
	if err != nil {
		handleExportError(c, err)
		return
	}

	respondExport(c, "fitness", result)
}

// respondExport 输出导出结果。JSON 内联返回，CSV/HTML 以附件下载，
// 文件名带随机 UUID 避免浏览器缓存与覆盖。
func respondExport(c *gin.Context, kind string, result *service.ExportResult) {
	switch result.Format {
	case service.FormatJSON:
		c.JSON(http.StatusOK, gin.H{
			"format": result.Format,
			"count":  result.Count,
			"rows":   result.Rows,
		})
	case service.FormatCSV:
		filename := fmt.Sprintf("%s-%s.csv", kind, uuid.NewString())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(result.Data))
	default:
		filename := fmt.Sprintf("%s-%s.html", kind, uuid.NewString())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.Data))
	}
}

func handleExportError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrExportInvalid) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, "export failed")
}
