// Package member verifies customer numbers against the local member roster.
// The roster is a JSON file maintained by hand; it is re-read on every
// verification so edits take effect without a restart.
package member

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

// Member is one roster entry.
type Member struct {
	CustomerNumber string `json:"customerNumber"`
	Name           string `json:"name"`
}

type roster struct {
	Members []Member `json:"members"`
}

// Verifier answers membership queries from the roster file.
type Verifier struct {
	path   string
	logger logging.Logger
}

func NewVerifier(cfg config.MemberConfig, logger logging.Logger) *Verifier {
	return &Verifier{
		path:   cfg.RosterPath,
		logger: logger.Named("member"),
	}
}

// Verify looks the customer number up in the roster.  A missing entry is a
// CodeMemberNotFound error; a missing or malformed roster file is a
// CodeMemberRosterLoad error.
func (v *Verifier) Verify(ctx context.Context, customerNumber string) (*Member, error) {
	customerNumber = strings.TrimSpace(customerNumber)
	if customerNumber == "" {
		return nil, errors.Validation("고객번호를 입력해주세요.")
	}

	data, err := os.ReadFile(v.path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMemberRosterLoad, "read member roster").
			WithDetail(v.path)
	}
	var r roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, errors.CodeMemberRosterLoad, "parse member roster").
			WithDetail(v.path)
	}

	for _, m := range r.Members {
		if m.CustomerNumber == customerNumber {
			v.logger.Debug("member verified",
				logging.String("customer_no", customerNumber))
			return &m, nil
		}
	}

	v.logger.Debug("member not found",
		logging.String("customer_no", customerNumber))
	return nil, errors.New(errors.CodeMemberNotFound, "not a registered member").
		WithDetail(customerNumber)
}
