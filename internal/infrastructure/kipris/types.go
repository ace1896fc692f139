package kipris

import "encoding/xml"

// KIPRIS Plus answers in XML under a <response><header/><body/> envelope.
// Repeated elements decode straight into slices, so the only shaping needed
// here is mirroring the nested *InfoArray wrappers of the bibliography
// response.

type respHeader struct {
	RequestMsgID string `xml:"requestMsgID"`
	ResultCode   string `xml:"resultCode"`
	ResultMsg    string `xml:"resultMsg"`
	SuccessYN    string `xml:"successYN"`
}

// wordSearchItem is one hit of getWordSearch (also returned by
// getAdvancedSearch, which shares the item schema).
type wordSearchItem struct {
	ApplicationNumber string `xml:"applicationNumber"`
	RegisterNumber    string `xml:"registerNumber"`
	ApplicantName     string `xml:"applicantName"`
	InventorName      string `xml:"inventorName"`
	ApplicationDate   string `xml:"applicationDate"`
	RegisterDate      string `xml:"registerDate"`
	PublicationDate   string `xml:"publicationDate"`
	RightDuration     string `xml:"rightDuration"`
	InventionTitle    string `xml:"inventionTitle"`
	ClaimCount        string `xml:"claimCount"`
	RegisterStatus    string `xml:"registerStatus"`
	ExamStatus        string `xml:"examStatus"`
	IPCCode           string `xml:"ipcCode"`
}

type wordSearchResponse struct {
	XMLName xml.Name   `xml:"response"`
	Header  respHeader `xml:"header"`
	Body    struct {
		Items struct {
			Item []wordSearchItem `xml:"item"`
		} `xml:"items"`
	} `xml:"body"`
}

// biblioSummary carries the summary block of the bibliography response.
type biblioSummary struct {
	ApplicationNumber              string `xml:"applicationNumber"`
	ApplicationDate                string `xml:"applicationDate"`
	RegisterNumber                 string `xml:"registerNumber"`
	RegisterDate                   string `xml:"registerDate"`
	RegisterStatus                 string `xml:"registerStatus"`
	InventionTitle                 string `xml:"inventionTitle"`
	ClaimCount                     string `xml:"claimCount"`
	PublicationDate                string `xml:"publicationDate"`
	OpenDate                       string `xml:"openDate"`
	FinalDisposal                  string `xml:"finalDisposal"`
	InternationalApplicationNumber string `xml:"internationalApplicationNumber"`
}

type nameInfo struct {
	Name string `xml:"name"`
}

type priorityInfo struct {
	PriorityApplicationNumber string `xml:"priorityApplicationNumber"`
	PriorityApplicationDate   string `xml:"priorityApplicationDate"`
}

type ipcInfo struct {
	IPCNumber string `xml:"ipcNumber"`
}

// biblioItem is the single <item> of getBibliographyDetailInfoSearch.  A
// response without it means the application number has no bibliography.
type biblioItem struct {
	Summary struct {
		Info biblioSummary `xml:"biblioSummaryInfo"`
	} `xml:"biblioSummaryInfoArray"`
	Applicants struct {
		Info []nameInfo `xml:"applicantInfo"`
	} `xml:"applicantInfoArray"`
	Inventors struct {
		Info []nameInfo `xml:"inventorInfo"`
	} `xml:"inventorInfoArray"`
	Priorities struct {
		Info []priorityInfo `xml:"priorityInfo"`
	} `xml:"priorityInfoArray"`
	IPCs struct {
		Info []ipcInfo `xml:"ipcInfo"`
	} `xml:"ipcInfoArray"`
}

type biblioResponse struct {
	XMLName xml.Name   `xml:"response"`
	Header  respHeader `xml:"header"`
	Body    struct {
		Item *biblioItem `xml:"item"`
	} `xml:"body"`
}

// fullTextResponse is the envelope of the full-text document lookups, whose
// <item> sits directly under <body> without an <items> wrapper.
type fullTextResponse struct {
	XMLName xml.Name   `xml:"response"`
	Header  respHeader `xml:"header"`
	Body    struct {
		Item *struct {
			DocName string `xml:"docName"`
			Path    string `xml:"path"`
		} `xml:"item"`
	} `xml:"body"`
}
