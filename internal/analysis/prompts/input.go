package prompts

import (
	"strings"
	"time"
)

const notSpecified = "Not specified"

// Input carries the idea fields a prompt renders. Build it with NewInput so
// absent values already read "Not specified".
type Input struct {
	Title                  string
	Description            string
	ProblemStatement       string
	TargetAudience         string
	UniqueValueProposition string
	Category               string
	Stage                  string
	TeamSize               string
	FundingNeeded          string
	Domain                 string
	Subdomain              string

	// YYYY-MM-DD
	CurrentDate string
}

// IdeaFields is the raw descriptive input before defaults are applied.
type IdeaFields struct {
	Title                  string
	Description            string
	ProblemStatement       string
	TargetAudience         string
	UniqueValueProposition string
	Category               string
	Stage                  string
	TeamSize               string
	FundingNeeded          string
	Domain                 string
	Subdomain              string
}

func NewInput(f IdeaFields, now time.Time) Input {
	return Input{
		Title:                  orDefault(f.Title, notSpecified),
		Description:            orDefault(f.Description, notSpecified),
		ProblemStatement:       orDefault(f.ProblemStatement, notSpecified),
		TargetAudience:         orDefault(f.TargetAudience, notSpecified),
		UniqueValueProposition: orDefault(f.UniqueValueProposition, notSpecified),
		Category:               orDefault(f.Category, notSpecified),
		Stage:                  orDefault(f.Stage, notSpecified),
		TeamSize:               orDefault(f.TeamSize, notSpecified),
		FundingNeeded:          orDefault(f.FundingNeeded, notSpecified),
		Domain:                 orDefault(f.Domain, "Healthcare"),
		Subdomain:              orDefault(f.Subdomain, "General"),
		CurrentDate:            now.UTC().Format("2006-01-02"),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
