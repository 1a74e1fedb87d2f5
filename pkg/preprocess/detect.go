package preprocess

import (
	"github.com/bowline-go/bowline/pkg/frame"
)

// Role is the transformation role of a column.
type Role string

const (
	// RoleNumber marks a continuous numeric column.
	RoleNumber Role = "number"
	// RoleBinary marks a column with exactly two distinct values.
	RoleBinary Role = "binary"
	// RoleCategory marks a discrete column with more than two values.
	RoleCategory Role = "category"
	// RoleID marks a column where every row is distinct. ID columns take
	// part in no transformation.
	RoleID Role = "id"
)

// modalShareCutoff is the share of rows the modal value must exceed before a
// numeric column is read as categorical.
const modalShareCutoff = 0.20

// uniqueRatioCutoff is the distinct-to-total ratio above which a numeric
// column is read as continuous.
const uniqueRatioCutoff = 0.01

// DetectRole guesses the role of a column between number, category, binary
// and id, using a mix of type inference and heuristic rules.
//
// NOTE: this is experimental and has no claim to high accuracy, use with
// caution.
func DetectRole(col *frame.Series) Role {
	counts := col.ValueCounts()
	unique := len(counts)
	total := col.Len()

	if unique == 2 {
		return RoleBinary
	}
	if unique == total {
		return RoleID
	}
	if !col.IsNumeric() {
		return RoleCategory
	}
	if total == 0 || float64(unique)/float64(total) > uniqueRatioCutoff {
		return RoleNumber
	}

	mode, share := modalShare(counts, total)
	if share > modalShareCutoff {
		if mode != "0" {
			return RoleCategory
		}

		// A heavy zero mode is often just sparsity. Drop the zeros and
		// test the modal share again.
		zeros := counts["0"]
		withoutZeros := make(map[string]int, len(counts)-1)
		for k, v := range counts {
			if k != "0" {
				withoutZeros[k] = v
			}
		}
		if _, share := modalShare(withoutZeros, total-zeros); share > modalShareCutoff {
			return RoleCategory
		}
	}

	return RoleNumber
}

func modalShare(counts map[string]int, total int) (string, float64) {
	var mode string
	best := -1
	for value, count := range counts {
		if count > best || (count == best && value < mode) {
			mode = value
			best = count
		}
	}
	if total == 0 || best < 0 {
		return "", 0
	}

	return mode, float64(best) / float64(total)
}
