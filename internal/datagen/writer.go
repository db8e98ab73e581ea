package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/okian/vitrine/internal/domain/model"
)

var headerSets = map[string][]string{
	HeadersEN: {"ID", "Brand", "Material", "Gender", "Season", "Price", "Rating", "ReviewCount", "DiscountPercent", "UnitsSoldCode"},
	HeadersPT: {"ID", "Marca", "Material", "Gênero", "Temporada", "Preço", "Nota", "N_Avaliações", "Desconto", "Qtd_Vendidos_Cod"},
}

// WriteCSV writes rows with the named header set. Missing numbers become
// empty cells.
func WriteCSV(w io.Writer, rows []model.Product, headers string, delim rune) error {
	header, ok := headerSets[headers]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHeaders, headers)
	}

	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, p := range rows {
		rec[0], rec[1], rec[2], rec[3], rec[4] = p.ID, p.Brand, p.Material, p.Gender, p.Season
		rec[5] = cell(p.Price, 2)
		rec[6] = cell(p.Rating, 1)
		rec[7] = cell(p.ReviewCount, 0)
		rec[8] = cell(p.DiscountPercent, 0)
		rec[9] = cell(p.UnitsSoldCode, 0)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v float64, prec int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
