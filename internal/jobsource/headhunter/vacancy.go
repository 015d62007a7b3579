package headhunter

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/spigell/resume-lens/internal/job"
)

// Source marks postings that came from hh.ru.
const Source = "hh"

type Vacancy struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Area struct {
		Name string `json:"name,omitempty"`
	} `json:"area,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	Schedule struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"schedule,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Description  string `json:"description,omitempty"`
	KeySkills    []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
}

// ToPosting maps the vacancy onto a posting. Key skills become requirements
// and the HTML description is kept as is.
func (v *Vacancy) ToPosting() job.Posting {
	location := v.Area.Name
	if v.Schedule.ID == "remote" {
		location = "Remote"
	}

	requirements := make([]string, 0, len(v.KeySkills))
	for _, skill := range v.KeySkills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			requirements = append(requirements, name)
		}
	}

	return job.Posting{
		Title:        v.Name,
		Company:      v.Employer.Name,
		Location:     location,
		Description:  v.Description,
		Requirements: requirements,
		Source:       Source,
	}
}

var vacancyPathRe = regexp.MustCompile(`/vacancy/(\d+)`)

// ParseVacancyID accepts either a numeric id or a vacancy URL such as
// https://hh.ru/vacancy/123456?from=search and returns the id.
func ParseVacancyID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty vacancy reference")
	}
	if isDigits(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse vacancy url: %w", err)
	}
	if m := vacancyPathRe.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("no vacancy id in %q", s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
