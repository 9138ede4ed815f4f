package plan_models

import (
	"fmt"
	"strings"

	"agentsville/pkg/utils"
)

type Interest string

const (
	InterestArt         Interest = "art"
	InterestCooking     Interest = "cooking"
	InterestComedy      Interest = "comedy"
	InterestDancing     Interest = "dancing"
	InterestFitness     Interest = "fitness"
	InterestGardening   Interest = "gardening"
	InterestHiking      Interest = "hiking"
	InterestMovies      Interest = "movies"
	InterestMusic       Interest = "music"
	InterestPhotography Interest = "photography"
	InterestReading     Interest = "reading"
	InterestSports      Interest = "sports"
	InterestTechnology  Interest = "technology"
	InterestTheatre     Interest = "theatre"
	InterestTennis      Interest = "tennis"
	InterestWriting     Interest = "writing"
)

var AllInterests = []Interest{
	InterestArt, InterestCooking, InterestComedy, InterestDancing,
	InterestFitness, InterestGardening, InterestHiking, InterestMovies,
	InterestMusic, InterestPhotography, InterestReading, InterestSports,
	InterestTechnology, InterestTheatre, InterestTennis, InterestWriting,
}

func ParseInterest(s string) (Interest, error) {
	candidate := Interest(strings.ToLower(strings.TrimSpace(s)))
	for _, in := range AllInterests {
		if in == candidate {
			return in, nil
		}
	}
	return "", fmt.Errorf("unknown interest %q: %w", s, utils.ErrInvalidInput)
}

// ParseInterests parses a comma separated list, skipping blanks.
func ParseInterests(csv string) ([]Interest, error) {
	var out []Interest
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		in, err := ParseInterest(part)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// SharesInterest reports whether a and b have at least one interest in common.
func SharesInterest(a, b []Interest) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
