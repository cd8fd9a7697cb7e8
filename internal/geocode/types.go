package geocode

import (
	"github.com/eviction-cares/internal/models"
)

// Match statuses reported by the batch geocoder
const (
	StatusMatch   = "Match"
	StatusNoMatch = "No_Match"
	StatusTie     = "Tie"
)

// BatchInput is one row of a batch request. ID echoes back in the response.
type BatchInput struct {
	ID     string
	Street string
	City   string
	State  string
	Zip    string
}

// BatchResult is one row of a batch response
type BatchResult struct {
	ID          string
	MatchStatus string
	Location    *models.Point
}

// Outcome collects the results of geocoding a set of inputs. Results holds
// only matched rows; Failed lists the ids of inputs whose chunk could not be
// geocoded after retries.
type Outcome struct {
	Results      []BatchResult
	Failed       []string
	Requests     int
	FailedChunks int
	CacheHits    int
}
