package usecase

import (
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/draft-league-board/internal/domain/standings"
)

var tableDecoder = sonic.ConfigStd

// Normalizer turns a raw standings document into a validated, ranked table.
type Normalizer struct {
	validate *validator.Validate
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Normalize decodes raw, checks required fields and ranks the entries.
// Every rejection wraps ErrMalformedPayload.
func (n *Normalizer) Normalize(raw []byte) (*standings.Table, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, crerr.Wrap(ErrMalformedPayload, "empty standings document")
	}

	var table standings.Table
	if err := tableDecoder.Unmarshal(raw, &table); err != nil {
		return nil, malformed(err, "decode standings document")
	}

	if err := n.validate.Struct(table); err != nil {
		return nil, malformed(err, "validate standings document")
	}

	if table.Scoring.IsH2H() {
		for i, entry := range table.Entries {
			if entry.H2HInfo == nil {
				return nil, crerr.Wrapf(ErrMalformedPayload,
					"entry %d (team_code=%d) has no h2h_info in a head-to-head league", i, entry.TeamCode)
			}
		}
	}

	standings.Rank(&table)
	return &table, nil
}

// malformed keeps ErrMalformedPayload in the unwrap chain and the decoder error as detail.
func malformed(cause error, msg string) error {
	return crerr.WithSecondaryError(crerr.Wrapf(ErrMalformedPayload, "%s: %v", msg, cause), cause)
}
