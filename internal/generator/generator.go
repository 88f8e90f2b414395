// Package generator produces a deterministic mock sales batch covering one
// year of daily activity, used when no transaction file is supplied.
package generator

import (
	"math/rand"
	"time"

	"salespulse/pkg/contracts/domain"
)

var products = []struct {
	name      string
	unitPrice float64
}{
	{"Enterprise", 1000},
	{"Professional", 200},
	{"Starter", 50},
}

var regions = []string{"North America", "Europe", "Asia Pacific", "Latin America"}
var channels = []string{"Direct", "Partner", "Online"}
var customerTypes = []string{"SMB", "Mid-Market", "Enterprise"}

// costRatio is the fixed cost fraction of revenue in generated data.
const costRatio = 0.4

// Config controls batch generation.
type Config struct {
	Seed   int64     // rand seed; same seed, same batch
	Days   int       // number of days ending at AsOf
	AsOf   time.Time // last day of the period
	Sparse bool      // when true, roughly 30% of day/product/region cells have data
}

// DefaultConfig returns the standard one-year batch configuration.
func DefaultConfig(asOf time.Time) Config {
	return Config{Seed: 42, Days: 365, AsOf: asOf, Sparse: true}
}

// Generate builds a mock transaction batch. Each record's cost is a fixed
// fraction of revenue; profit is the difference.
func Generate(cfg Config) []domain.Record {
	if cfg.Days <= 0 {
		cfg.Days = 365
	}
	if cfg.AsOf.IsZero() {
		cfg.AsOf = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	start := cfg.AsOf.AddDate(0, 0, -(cfg.Days - 1))
	var records []domain.Record
	for day := 0; day < cfg.Days; day++ {
		date := start.AddDate(0, 0, day)
		for _, product := range products {
			for _, region := range regions {
				if cfg.Sparse && rng.Float64() <= 0.7 {
					continue
				}
				quantity := rng.Intn(19) + 1
				revenue := product.unitPrice * float64(quantity)
				cost := revenue * costRatio
				records = append(records, domain.Record{
					Date: date,
					Segments: map[string]string{
						"product":       product.name,
						"region":        region,
						"channel":       channels[rng.Intn(len(channels))],
						"customer_type": customerTypes[rng.Intn(len(customerTypes))],
					},
					Revenue: revenue,
					Cost:    cost,
					Profit:  revenue - cost,
				})
			}
		}
	}
	return records
}
