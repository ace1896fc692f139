package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/domain/annuity"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

func openSheet(t *testing.T, data []byte, sheetName string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestRegisteredWorkbook(t *testing.T) {
	rec := patent.NewRecord("1020160042595")
	rec.RegistrationNumber = "1023456780000"
	rec.ApplicantName = "주식회사 유니크"
	rec.InventionName = "가열 장치"
	rec.ApplicationDate = "2016.04.07"
	rec.RegistrationDate = "2018.03.15"
	rec.ExpirationDate = "2036.04.07"
	rec.ClaimCount = "9"
	rec.RegistrationStatus = patent.StatusRegistered
	rec.BusinessNumber = "1234567890"
	rec.CustomerNumber = "120190612244"

	calc := annuity.Calculate(rec, []annuity.PaymentEntry{
		{AnnualYear: "6", PaymentDate: "20230315", Amount: "140000"},
		{AnnualYear: "7", PaymentDate: "20240315", Amount: "140000"},
	}, annuity.Passthrough{})

	w := NewWriter(logging.NewNopLogger(), nil)
	data, err := w.Registered([]lookup.RegisteredPatent{{Record: rec, Annuity: calc}})
	require.NoError(t, err)

	rows := openSheet(t, data, "등록특허현황")
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"출원번호", "등록번호", "출원인", "출원일",
		"등록일", "존속기간 만료일", "발명의명칭", "청구항수", "등록상태",
		"직전년도 납부연월", "해당 연차료 납부마감일", "해당연차수", "해당연차료",
		"미납여부", "추납기간", "회복기간", "사업자번호", "고객번호",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, "10-2016-0042595", row[0])
	assert.Equal(t, "1023456780000", row[1])
	assert.Equal(t, "2016.04.07", row[3])
	assert.Equal(t, "등록", row[8])
	assert.Equal(t, "2023.03", row[9])
	assert.Equal(t, "2024.03.15", row[10])
	assert.Equal(t, "7", row[11])
	assert.Equal(t, "유효", row[13])
	assert.Equal(t, patent.Sentinel, row[14])
	assert.Equal(t, "120190612244", row[17])
}

func TestApplicationWorkbook(t *testing.T) {
	rec := patent.NewRecord("1020190012345")
	rec.ApplicantName = "주식회사 유니크"
	rec.InventorName = "김철수"
	rec.InventionName = "냉각 장치"
	rec.ApplicationDate = "2019-06-12"
	rec.PriorityDate = "2018-06-15"
	rec.PCTDeadline = "2019-06-15"
	rec.RegistrationStatus = patent.StatusExamining
	rec.PublicationFullText = "https://plus.kipris.or.kr/doc/pub.pdf"

	w := NewWriter(logging.NewNopLogger(), nil)
	data, err := w.Applications([]patent.Record{rec}, "120190612244")
	require.NoError(t, err)

	rows := openSheet(t, data, "출원특허현황")
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"출원번호", "등록번호", "출원인", "발명자", "출원일",
		"우선일", "PCT마감일", "발명의 명칭", "현재상태",
		"공개전문", "공고전문", "고객번호",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, "1020190012345", row[0])
	assert.Equal(t, patent.Sentinel, row[1])
	assert.Equal(t, "김철수", row[3])
	assert.Equal(t, "2019.06.12", row[4])
	assert.Equal(t, "2019.06.15", row[6])
	assert.Equal(t, "심사중", row[8])
	assert.Equal(t, "https://plus.kipris.or.kr/doc/pub.pdf", row[9])
	assert.Equal(t, "120190612244", row[11])
}

func TestApplicationWorkbook_Empty(t *testing.T) {
	w := NewWriter(logging.NewNopLogger(), nil)
	data, err := w.Applications(nil, "")
	require.NoError(t, err)

	rows := openSheet(t, data, "출원특허현황")
	require.Len(t, rows, 1, "header only")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "등록특허현황_2026-08-30.xlsx", Filename(SheetRegistered, now))
	assert.Equal(t, "출원특허현황_2026-08-30.xlsx", Filename(SheetApplication, now))
}
