package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// column identifies a recognised dataset column.
type column int

const (
	colUnknown column = iota
	colID
	colBrand
	colMaterial
	colGender
	colSeason
	colPrice
	colRating
	colReviewCount
	colDiscount
	colUnitsSold
)

// aliases maps folded header names to columns. Both the English names and the
// Portuguese headers of the original export are accepted.
var aliases = map[string]column{
	"id":              colID,
	"productid":       colID,
	"brand":           colBrand,
	"marca":           colBrand,
	"material":        colMaterial,
	"gender":          colGender,
	"genero":          colGender,
	"season":          colSeason,
	"temporada":       colSeason,
	"price":           colPrice,
	"preco":           colPrice,
	"rating":          colRating,
	"nota":            colRating,
	"reviewcount":     colReviewCount,
	"reviews":         colReviewCount,
	"navaliacoes":     colReviewCount,
	"discountpercent": colDiscount,
	"discount":        colDiscount,
	"desconto":        colDiscount,
	"unitssoldcode":   colUnitsSold,
	"qtdvendidoscod":  colUnitsSold,
}

// fold lowercases s, strips accents and drops everything that is not a
// letter or digit: "N_Avaliações" becomes "navaliacoes".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolve maps header cells to columns.
func resolve(header []string) []column {
	out := make([]column, len(header))
	for i, h := range header {
		out[i] = aliases[fold(strings.TrimPrefix(h, "\uFEFF"))]
	}
	return out
}
