// Package datagen produces synthetic product catalogs for demos and smoke tests.
package datagen

import "time"

// Header sets accepted by WriteCSV.
const (
	HeadersEN = "en"
	HeadersPT = "pt"
)

// Config controls catalog generation. The same Config always yields the
// same rows.
type Config struct {
	Rows        int     // number of products
	Seed        uint64  // PRNG seed
	MissingRate float64 // probability a numeric cell is left blank, 0..1
	Brands      []string
	Materials   []string
}

// DefaultConfig returns a Config sized for a demo dashboard.
func DefaultConfig() Config {
	return Config{
		Rows:        2000,
		Seed:        1,
		MissingRate: 0.01,
		Brands: []string{
			"Aurora", "Boreal", "Cardume", "Duna", "Estrela", "Farol",
			"Garoa", "Horizonte", "Ipê", "Jangada", "Lume", "Maré",
		},
		Materials: []string{"Algodão", "Couro", "Jeans", "Lã", "Linho", "Poliéster", "Seda", "Viscose"},
	}
}

// VerifyConfig points Verify at a running dashboard.
type VerifyConfig struct {
	BaseURL    string        // e.g. http://localhost:9080
	Timeout    time.Duration // per request
	ExpectRows int           // expected base row count; 0 skips the check
}
