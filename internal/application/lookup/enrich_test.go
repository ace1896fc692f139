package lookup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

func baseRecords(appNos ...string) []patent.Record {
	records := make([]patent.Record, len(appNos))
	for i, n := range appNos {
		records[i] = patent.NewRecord(n)
	}
	return records
}

func TestEnrich_MergesDetail(t *testing.T) {
	lookup := func(_ context.Context, appNo string) (*patent.Record, error) {
		detail := patent.NewRecord(appNo)
		detail.RegistrationNumber = "10" + appNo
		detail.RegistrationDate = "2021-03-15"
		detail.ClaimCount = "7"
		return &detail, nil
	}
	e := NewEnricher(lookup, logging.NewNopLogger(), nil)

	out := e.Enrich(context.Background(), baseRecords("A", "B", "C"))

	require.Len(t, out, 3)
	for i, appNo := range []string{"A", "B", "C"} {
		assert.Equal(t, appNo, out[i].ApplicationNumber)
		assert.Equal(t, "10"+appNo, out[i].RegistrationNumber)
		assert.Equal(t, "7", out[i].ClaimCount)
	}
}

func TestEnrich_FailedItemsKeepBaseRecord(t *testing.T) {
	lookup := func(_ context.Context, appNo string) (*patent.Record, error) {
		if appNo == "B" {
			return nil, errors.UpstreamTransport("upstream down")
		}
		detail := patent.NewRecord(appNo)
		detail.RegistrationNumber = "reg-" + appNo
		return &detail, nil
	}
	e := NewEnricher(lookup, logging.NewNopLogger(), nil)

	in := baseRecords("A", "B", "C")
	in[1].InventionName = "가열 장치"
	out := e.Enrich(context.Background(), in)

	require.Len(t, out, 3)
	assert.Equal(t, "reg-A", out[0].RegistrationNumber)
	// The failed item is byte-for-byte the input record.
	assert.Equal(t, in[1], out[1])
	assert.Equal(t, "reg-C", out[2].RegistrationNumber)
}

func TestEnrich_SentinelDetailNeverOverwrites(t *testing.T) {
	lookup := func(_ context.Context, appNo string) (*patent.Record, error) {
		detail := patent.NewRecord(appNo)
		return &detail, nil
	}
	e := NewEnricher(lookup, logging.NewNopLogger(), nil)

	in := baseRecords("A")
	in[0].RegistrationNumber = "1023456780000"
	in[0].ClaimCount = "12"
	out := e.Enrich(context.Background(), in)

	assert.Equal(t, "1023456780000", out[0].RegistrationNumber)
	assert.Equal(t, "12", out[0].ClaimCount)
}

func TestEnrich_EmptyInput(t *testing.T) {
	e := NewEnricher(func(context.Context, string) (*patent.Record, error) {
		t.Fatal("lookup must not run for empty input")
		return nil, nil
	}, logging.NewNopLogger(), nil)

	out := e.Enrich(context.Background(), nil)
	assert.Empty(t, out)
}
