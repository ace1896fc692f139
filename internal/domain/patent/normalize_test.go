package patent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single name", "주식회사 유니크", "주식회사 유니크"},
		{"comma joined", "김철수, 이영희, 박민준", "김철수"},
		{"trims whitespace", "  김철수 , 이영희", "김철수"},
		{"empty", "", Sentinel},
		{"sentinel", Sentinel, Sentinel},
		{"leading comma", ", 이영희", Sentinel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstName(tt.in))
		})
	}
}

func TestParseRegistrationStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ctx  SearchContext
		want RegistrationStatus
	}{
		{"empty defaults to registered in rights search", "", ContextRegisteredSearch, StatusRegistered},
		{"empty defaults to examining in application search", "", ContextApplicationSearch, StatusExamining},
		{"sentinel follows same fallback", Sentinel, ContextApplicationSearch, StatusExamining},
		{"registered text", "등록", ContextApplicationSearch, StatusRegistered},
		{"registration maintained", "등록유지", ContextRegisteredSearch, StatusRegistered},
		{"under examination", "심사중", ContextRegisteredSearch, StatusExamining},
		{"published", "공개", ContextApplicationSearch, StatusExamining},
		{"rejected is unknown", "거절", ContextRegisteredSearch, StatusUnknown},
		{"lapsed is unknown", "소멸", ContextApplicationSearch, StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRegistrationStatus(tt.raw, tt.ctx))
		})
	}
}

func TestDisplayApplicationNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"compact 13 digits", "1020190012345", "10-2019-0012345"},
		{"already hyphenated passes through", "10-2019-0012345", "10-2019-0012345"},
		{"short input passes through", "12345", "12345"},
		{"empty passes through", "", ""},
		{"sentinel passes through", Sentinel, Sentinel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayApplicationNumber(tt.in))
		})
	}
}

func TestCompactApplicationNumber(t *testing.T) {
	assert.Equal(t, "1020190012345", CompactApplicationNumber("10-2019-0012345"))
	assert.Equal(t, "1020190012345", CompactApplicationNumber(" 1020190012345 "))
}

func TestDisplayCompact_RoundTrip(t *testing.T) {
	compact := "1020190012345"
	assert.Equal(t, compact, CompactApplicationNumber(DisplayApplicationNumber(compact)))
}
