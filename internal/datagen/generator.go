package datagen

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/vitrine/internal/domain/model"
)

var (
	genders = []string{"Feminino", "Masculino", "Unissex"}
	seasons = []string{"Primavera/Verão", "Outono/Inverno", "Ano todo"}
)

// Generation ranges.
const (
	priceMin       = 29.9
	priceSpread    = 0.6 // lognormal sigma
	priceMedian    = 140.0
	ratingMean     = 4.0
	ratingSD       = 0.6
	reviewsMean    = 60.0
	discountMax    = 60
	unitsPerReview = 0.35
)

// Generate returns cfg.Rows products. Rows are a pure function of cfg.
func Generate(cfg Config) []model.Product {
	if cfg.Rows <= 0 {
		return nil
	}
	brands, materials := cfg.Brands, cfg.Materials
	if len(brands) == 0 {
		brands = DefaultConfig().Brands
	}
	if len(materials) == 0 {
		materials = DefaultConfig().Materials
	}

	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], cfg.Seed)
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	// Each brand gets a price level so the top-brands chart has a shape.
	level := make(map[string]float64, len(brands))
	for _, b := range brands {
		level[b] = math.Exp(rng.NormFloat64() * 0.35)
	}

	out := make([]model.Product, cfg.Rows)
	for i := range out {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			id = uuid.Nil
		}
		brand := brands[rng.IntN(len(brands))]

		price := priceMin + priceMedian*level[brand]*math.Exp(rng.NormFloat64()*priceSpread)
		rating := clamp(ratingMean+rng.NormFloat64()*ratingSD+(price-priceMedian)/2000, 0, 5)
		reviews := math.Floor(rng.ExpFloat64() * reviewsMean * (rating / ratingMean))
		discount := float64(rng.IntN(discountMax/5+1) * 5)
		units := math.Floor(reviews*unitsPerReview*(1+discount/100) + float64(rng.IntN(10)))

		p := model.Product{
			ID:              id.String(),
			Brand:           brand,
			Material:        materials[rng.IntN(len(materials))],
			Gender:          genders[rng.IntN(len(genders))],
			Season:          seasons[rng.IntN(len(seasons))],
			Price:           round2(price),
			Rating:          round1(rating),
			ReviewCount:     reviews,
			DiscountPercent: discount,
			UnitsSoldCode:   units,
		}
		if cfg.MissingRate > 0 {
			blank(&p, rng, cfg.MissingRate)
		}
		out[i] = p
	}
	return out
}

// blank drops numeric cells at the given rate to exercise missing-value paths.
func blank(p *model.Product, rng *rand.Rand, rate float64) {
	for _, f := range []*float64{&p.Price, &p.Rating, &p.ReviewCount, &p.DiscountPercent, &p.UnitsSoldCode} {
		if rng.Float64() < rate {
			*f = math.NaN()
		}
	}
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
func round1(v float64) float64        { return math.Round(v*10) / 10 }
func round2(v float64) float64        { return math.Round(v*100) / 100 }
