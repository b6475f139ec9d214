package resolver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ryanb/mediavault/pkg/tmdb"
	"github.com/ryanb/mediavault/pkg/titleclean"
)

const (
	titleWeight      = 60.0
	yearExactBonus   = 30.0
	yearCloseBonus   = 15.0
	yearMissingBonus = 10.0
	popularityCap    = 10.0
	posterBonus      = 5.0
	kindBonus        = 40.0
)

// score ranks every result against the cleaned title/year, applying the
// preferred-kind bonus when kind is non-empty.
func score(results []tmdb.SearchResult, cleaned titleclean.Result, kind string) []Candidate {
	out := make([]Candidate, 0, len(results))
	for _, res := range results {
		out = append(out, Candidate{SearchResult: res, Score: scoreOne(res, cleaned, kind)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func scoreOne(res tmdb.SearchResult, cleaned titleclean.Result, kind string) float64 {
	var s float64

	s += titleSimilarity(res.DisplayTitle(), cleaned.Title) * titleWeight
	s += yearAgreement(res.Date(), cleaned.Year)

	if res.Popularity > popularityCap {
		s += popularityCap
	} else {
		s += res.Popularity
	}

	if res.PosterPath != "" {
		s += posterBonus
	}

	if kind != "" && res.MediaType == kind {
		s += kindBonus
	}

	return s
}

// titleSimilarity returns 1 for an exact case-insensitive match, 0.6 for a
// substring match either direction, 0 otherwise.
func titleSimilarity(candidate, cleaned string) float64 {
	c := strings.ToLower(strings.TrimSpace(candidate))
	t := strings.ToLower(strings.TrimSpace(cleaned))
	if c == "" || t == "" {
		return 0
	}
	if c == t {
		return 1
	}
	if strings.Contains(c, t) || strings.Contains(t, c) {
		return 0.6
	}
	return 0
}

func yearAgreement(dateStr string, wantYear *int) float64 {
	if wantYear == nil {
		return yearMissingBonus
	}
	if len(dateStr) < 4 {
		return 0
	}
	y, err := strconv.Atoi(dateStr[:4])
	if err != nil {
		return 0
	}
	diff := y - *wantYear
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return yearExactBonus
	case diff == 1:
		return yearCloseBonus
	default:
		return 0
	}
}

// topAccepted returns the highest-scored candidate if it clears the
// acceptance threshold.
func topAccepted(candidates []Candidate) *Candidate {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	if best.Score > acceptThreshold {
		return &best
	}
	return nil
}
