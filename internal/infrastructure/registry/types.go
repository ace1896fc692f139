package registry

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The registry API (PttRgstRtInfoInqSvc) answers with a flat JSON envelope.
// Two quirks require custom decoding: list elements ("rightList", "pay")
// arrive as a bare object when there is exactly one entry, and numeric
// fields are sometimes serialized as strings and sometimes as numbers.

// listOrOne decodes a JSON value that is either an array of T or a single T.
type listOrOne[T any] []T

func (l *listOrOne[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = []T{one}
	return nil
}

// flexString decodes a value that may arrive as a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

func (f flexString) String() string { return string(f) }

// flexInt decodes an integer that may arrive as a JSON number or string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// rightItem is one entry of the rightList element.
type rightItem struct {
	ApplNo          flexString `json:"applNo"`
	RgstNo          flexString `json:"rgstNo"`
	ApplicantInfo   flexString `json:"applicantInfo"`
	RightHolderInfo flexString `json:"rightHolderInfo"`
	AgentInfo       flexString `json:"agentInfo"`
	ApplDate        flexString `json:"applDate"`
	Title           flexString `json:"title"`
	RgstDate        flexString `json:"rgstDate"`
	ClaimCount      flexString `json:"claimCount"`
	PubNo           flexString `json:"pubNo"`
	PubDate         flexString `json:"pubDate"`
	CndrtExptnDate  flexString `json:"cndrtExptnDate"`
	RgstStatus      flexString `json:"rgstStatus"`
	BusinessNo      flexString `json:"businessNo"`
	ApplicantCd     flexString `json:"applicantCd"`
}

// rightListEnvelope is the response of getBusinessRightList.
type rightListEnvelope struct {
	ResultCode string  `json:"resultCode"`
	ResultMsg  string  `json:"resultMsg"`
	TotalCount flexInt `json:"totalCount"`
	Items      struct {
		RightList listOrOne[rightItem] `json:"rightList"`
	} `json:"items"`
}

// payItem is one entry of the pay element in a register history.
type payItem struct {
	LastAnnl  flexString `json:"lastAnnl"`
	PayDate   flexString `json:"payDate"`
	PayAmount flexString `json:"payAmount"`
}

// historyEnvelope is the response of getPatentRegisterHistory.
type historyEnvelope struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
	Items      struct {
		Pay listOrOne[payItem] `json:"pay"`
	} `json:"items"`
}
