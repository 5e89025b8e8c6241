// internal/scoring/match/tables.go
package match

// DefaultWeights is the canonical dimension weighting; it sums to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Domain:   0.25,
		Stage:    0.20,
		Ticket:   0.15,
		Location: 0.10,
		Thesis:   0.15,
		Traction: 0.15,
	}
}

// stageHierarchy orders funding stages for adjacency checks. Keys are
// normalized (lowercase, separators stripped).
var stageHierarchy = map[string]int{
	"preseed": 1,
	"seed":    2,
	"seriesa": 3,
	"seriesb": 4,
	"seriesc": 5,
	"growth":  6,
}

// domainSimilarity lists domains considered related for partial credit.
var domainSimilarity = map[string][]string{
	"saas":       {"b2b", "enterprise", "productivity"},
	"fintech":    {"payments", "banking", "insurance", "lending"},
	"healthtech": {"healthcare", "medtech", "telemedicine"},
	"deeptech":   {"ai", "ml", "robotics", "quantum"},
	"cleantech":  {"energy", "sustainability", "climate"},
	"consumer":   {"marketplace", "e-commerce", "d2c"},
}

// regionCities maps a region name to the cities it contains, for the
// regional fallback in location matching.
var regionCities = map[string][]string{
	"india":  {"bangalore", "mumbai", "delhi", "hyderabad", "chennai", "pune"},
	"usa":    {"sf", "san francisco", "new york", "nyc", "boston", "la", "seattle"},
	"europe": {"london", "berlin", "paris", "amsterdam"},
}
