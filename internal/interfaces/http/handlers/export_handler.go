package handlers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/application/export"
	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the xlsx download endpoint.
type ExportHandler struct {
	writer *export.Writer
	logger logging.Logger
}

func NewExportHandler(writer *export.Writer, logger logging.Logger) *ExportHandler {
	return &ExportHandler{
		writer: writer,
		logger: logger.Named("handler"),
	}
}

// exportRequest carries the rows the client currently displays.  The client
// posts its data back rather than re-running the search, so a download always
// matches what is on screen.
type exportRequest struct {
	Type           string                    `json:"type"`
	CustomerNumber string                    `json:"customerNumber"`
	Registered     []lookup.RegisteredPatent `json:"registered"`
	Applications   []patent.Record           `json:"applications"`
}

// ExportExcel handles POST /api/export-excel.
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "다운로드할 특허 데이터가 없습니다.")
		return
	}

	var (
		sheet export.SheetType
		data  []byte
		err   error
	)
	switch req.Type {
	case string(export.SheetRegistered):
		if len(req.Registered) == 0 {
			failValidation(c, "다운로드할 특허 데이터가 없습니다.")
			return
		}
		sheet = export.SheetRegistered
		data, err = h.writer.Registered(req.Registered)
	case string(export.SheetApplication):
		if len(req.Applications) == 0 {
			failValidation(c, "다운로드할 특허 데이터가 없습니다.")
			return
		}
		sheet = export.SheetApplication
		data, err = h.writer.Applications(req.Applications, req.CustomerNumber)
	default:
		failValidation(c, "올바른 다운로드 유형을 선택해주세요.")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	filename := export.Filename(sheet, time.Now())
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", url.PathEscape(filename)))
	c.Data(200, xlsxContentType, data)
}
