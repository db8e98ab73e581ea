// Package dataset reads the product dataset from disk into a model.Table.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/vitrine/internal/domain/model"
	"github.com/okian/vitrine/pkg/logger"
	"github.com/okian/vitrine/pkg/metrics"
)

// Loader reads product tables from delimited text files.
type Loader struct {
	delimiter rune
	logger    logger.Logger
}

// NewLoader creates a Loader. Without WithDelimiter the separator is chosen
// from the file extension: tab for .tsv, comma otherwise.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is a shorthand for NewLoader(opts...).Load(ctx, path).
func Load(ctx context.Context, path string, opts ...Option) *model.Table {
	return NewLoader(opts...).Load(ctx, path)
}

// Load reads path into a table. It never fails: any error is logged at WARN,
// counted, and an empty table is returned so the dashboard still serves.
func (l *Loader) Load(ctx context.Context, path string) *model.Table {
	start := time.Now()
	t, err := l.LoadFile(path)
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordDatasetLoadFailure()
		metrics.RecordErrorByComponent("dataset", kind(err))
		l.log().Warn(ctx, "dataset unavailable, serving empty dashboard",
			logger.String("path", path), logger.Error(err))
		t = model.Empty()
	} else {
		l.log().Info(ctx, "dataset loaded",
			logger.String("path", path), logger.Int("rows", t.Len()))
	}
	metrics.UpdateDatasetRows(t.Len())
	return t
}

// LoadFile is Load without the degradation: errors are returned to the caller.
func (l *Loader) LoadFile(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()
	return l.Read(f, l.delimiterFor(path))
}

// Read parses delimited records from r. The first record is the header.
// Rows with the wrong number of fields are skipped. Numeric cells that do
// not parse become NaN.
func (l *Loader) Read(r io.Reader, delim rune) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := resolve(header)
	if !anyKnown(cols) {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, strings.Join(header, ","))
	}

	var rows []model.Product
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if len(rec) != len(cols) {
			continue
		}
		rows = append(rows, decode(cols, rec))
	}
	return model.NewTable(rows), nil
}

func (l *Loader) delimiterFor(path string) rune {
	if l.delimiter != 0 {
		return l.delimiter
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func (l *Loader) log() logger.Logger {
	if l.logger == nil {
		l.logger = logger.OrDefault().Named("dataset")
	}
	return l.logger
}

func decode(cols []column, rec []string) model.Product {
	p := model.Missing()
	for i, c := range cols {
		v := strings.TrimSpace(rec[i])
		switch c {
		case colID:
			p.ID = v
		case colBrand:
			p.Brand = v
		case colMaterial:
			p.Material = v
		case colGender:
			p.Gender = v
		case colSeason:
			p.Season = v
		case colPrice:
			p.Price = number(v)
		case colRating:
			p.Rating = number(v)
		case colReviewCount:
			p.ReviewCount = number(v)
		case colDiscount:
			p.DiscountPercent = number(v)
		case colUnitsSold:
			p.UnitsSoldCode = number(v)
		}
	}
	return p
}

// number coerces a cell to float64; anything unparseable or non-finite
// ("inf", "Infinity", "NaN") is NaN.
func number(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

func anyKnown(cols []column) bool {
	for _, c := range cols {
		if c != colUnknown {
			return true
		}
	}
	return false
}

func kind(err error) string {
	switch {
	case errors.Is(err, ErrOpen):
		return "open"
	case errors.Is(err, ErrNoHeader):
		return "no_header"
	case errors.Is(err, ErrNoColumns):
		return "no_columns"
	default:
		return "parse"
	}
}
