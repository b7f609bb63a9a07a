// Package importid derives the stable identity key a transaction is
// deduplicated on. Re-importing the same export must produce the same keys,
// so the persistence layer can upsert without clobbering manual edits.
package importid

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// noReference fills the key slot when a source row has no reference number.
const noReference = "no_ref"

// New builds the dedup key: source prefix, canonical date, reference (or a
// fixed fallback) and the absolute amount at two decimal places.
func New(source string, date string, reference string, amount decimal.Decimal) string {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		ref = noReference
	}
	return fmt.Sprintf("%s_%s_%s_%s", source, date, ref, amount.Abs().StringFixed(2))
}
