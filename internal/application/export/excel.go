// Package export renders search results as xlsx workbooks for download.
// Column layout and Korean headers match the tables shown on screen, so a
// downloaded sheet reads exactly like the page it came from.
package export

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

// SheetType selects which of the two workbook layouts to render.
type SheetType string

const (
	SheetRegistered  SheetType = "registered"
	SheetApplication SheetType = "application"
)

const (
	registeredSheetName  = "등록특허현황"
	applicationSheetName = "출원특허현황"

	minColumnWidth = 10
	maxColumnWidth = 50
	// Column widths are sized from the header and the first few data rows
	// only; scanning every row of a large export is not worth the cost.
	widthSampleRows = 10
)

var registeredHeaders = []string{
	"출원번호", "등록번호", "출원인", "출원일",
	"등록일", "존속기간 만료일", "발명의명칭", "청구항수", "등록상태",
	"직전년도 납부연월", "해당 연차료 납부마감일", "해당연차수", "해당연차료",
	"미납여부", "추납기간", "회복기간", "사업자번호", "고객번호",
}

var applicationHeaders = []string{
	"출원번호", "등록번호", "출원인", "발명자", "출원일",
	"우선일", "PCT마감일", "발명의 명칭", "현재상태",
	"공개전문", "공고전문", "고객번호",
}

// Filename builds the dated download filename for a sheet type.
func Filename(sheet SheetType, now time.Time) string {
	name := applicationSheetName
	if sheet == SheetRegistered {
		name = registeredSheetName
	}
	return fmt.Sprintf("%s_%s.xlsx", name, now.Format("2006-01-02"))
}

// Writer renders xlsx workbooks.  metrics may be nil.
type Writer struct {
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

func NewWriter(logger logging.Logger, metrics *prometheus.AppMetrics) *Writer {
	return &Writer{
		logger:  logger.Named("export"),
		metrics: metrics,
	}
}

// Registered renders the registered-rights workbook: one row per patent with
// its annuity columns, application numbers hyphenated for readability.
func (w *Writer) Registered(patents []lookup.RegisteredPatent) ([]byte, error) {
	rows := make([][]interface{}, len(patents))
	for i, p := range patents {
		rows[i] = []interface{}{
			patent.DisplayApplicationNumber(p.ApplicationNumber),
			p.RegistrationNumber,
			p.ApplicantName,
			exportDate(p.ApplicationDate),
			exportDate(p.RegistrationDate),
			exportDate(p.ExpirationDate),
			p.InventionName,
			p.ClaimCount,
			p.DisplayStatus(),
			p.Annuity.PreviousPaymentMonth,
			exportDate(p.Annuity.DueDate),
			p.Annuity.AnnualYear,
			p.Annuity.AnnualFee,
			p.Annuity.Validity.Korean(),
			p.Annuity.LatePaymentPeriod,
			p.Annuity.RecoveryPeriod,
			p.BusinessNumber,
			p.CustomerNumber,
		}
	}
	return w.write(SheetRegistered, registeredSheetName, registeredHeaders, rows)
}

// Applications renders the application-search workbook.  The customer number
// column echoes the number the caller searched with, not a per-record value.
func (w *Writer) Applications(records []patent.Record, customerNumber string) ([]byte, error) {
	if customerNumber == "" {
		customerNumber = patent.Sentinel
	}
	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		rows[i] = []interface{}{
			rec.ApplicationNumber,
			rec.RegistrationNumber,
			rec.ApplicantName,
			rec.InventorName,
			exportDate(rec.ApplicationDate),
			rec.PriorityDate,
			exportDate(rec.PCTDeadline),
			rec.InventionName,
			rec.DisplayStatus(),
			rec.PublicationFullText,
			rec.AnnouncementFullText,
			customerNumber,
		}
	}
	return w.write(SheetApplication, applicationSheetName, applicationHeaders, rows)
}

func (w *Writer) write(sheet SheetType, sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	started := time.Now()

	buf, err := buildWorkbook(sheetName, headers, rows)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if w.metrics != nil {
		w.metrics.ExportsTotal.WithLabelValues(string(sheet), outcome).Inc()
		w.metrics.ExportDuration.WithLabelValues(string(sheet)).Observe(time.Since(started).Seconds())
	}
	if err != nil {
		return nil, err
	}

	w.logger.Info("workbook rendered",
		logging.String("sheet_type", string(sheet)),
		logging.Int("rows", len(rows)),
		logging.Duration("elapsed", time.Since(started)))
	return buf, nil
}

func buildWorkbook(sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "name worksheet")
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "write header row")
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "resolve row cell")
		}
		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "write data row")
		}
	}

	if err := sizeColumns(f, sheetName, headers, rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "serialize workbook")
	}
	return buf.Bytes(), nil
}

func sizeColumns(f *excelize.File, sheetName string, headers []string, rows [][]interface{}) error {
	for c := range headers {
		width := minColumnWidth
		if w := utf8.RuneCountInString(headers[c]) + 2; w > width {
			width = w
		}
		for r := 0; r < len(rows) && r < widthSampleRows; r++ {
			if c >= len(rows[r]) {
				continue
			}
			if w := utf8.RuneCountInString(fmt.Sprint(rows[r][c])) + 2; w > width {
				width = w
			}
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "resolve column name")
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width)); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "set column width")
		}
	}
	return nil
}

// exportDate renders a date cell as "YYYY.MM.DD"; values that do not parse
// as dates fall back to the sentinel.
func exportDate(v string) string {
	return patent.NormalizeDate(v, patent.DotStyle)
}
