// Package validate holds field validators shared by the services.
package validate

import (
	"fmt"
	"regexp"
	"time"
)

const (
	MinScore = 1
	MaxScore = 10
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Year fails when the given year lies in the future.
func Year(year int) error {
	current := time.Now().Year()
	if year > current {
		return fmt.Errorf("year %d is greater than the current year %d", year, current)
	}
	return nil
}

// Score fails when the score is outside [1, 10].
func Score(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// Slug fails when the value contains anything but letters, numbers,
// hyphens or underscores.
func Slug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%q is not a valid slug", slug)
	}
	return nil
}
