// Package registry supplies the static source list the pipeline consumes:
// a built-in default set plus YAML-file loading for custom registries.
package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ivywatch/internal/model"
)

type universityPages struct {
	name  string
	pages map[model.PageType]string
}

var defaults = []universityPages{
	{
		name: "Harvard",
		pages: map[model.PageType]string{
			model.PageFees:       "https://college.harvard.edu/financial-aid/how-aid-works/cost-attendance",
			model.PageAdmissions: "https://college.harvard.edu/admissions/apply/first-year-applicants",
			model.PageDeadlines:  "https://college.harvard.edu/admissions/apply/application-timeline",
			model.PagePrograms:   "https://college.harvard.edu/academics/liberal-arts-sciences/concentrations",
			model.PageAid:        "https://college.harvard.edu/financial-aid",
			model.PageAbout:      "https://www.harvard.edu/about/",
		},
	},
	{
		name: "Yale",
		pages: map[model.PageType]string{
			model.PageFees:       "https://finaid.yale.edu/costs-affordability/cost-attendance",
			model.PageAdmissions: "https://admissions.yale.edu/first-year-application-process",
			model.PageDeadlines:  "https://admissions.yale.edu/dates-deadlines",
			model.PagePrograms:   "https://admissions.yale.edu/majors-academic-programs",
			model.PageAid:        "https://finaid.yale.edu/",
			model.PageAbout:      "https://www.yale.edu/about-yale",
		},
	},
	{
		name: "Princeton",
		pages: map[model.PageType]string{
			model.PageFees:       "https://admission.princeton.edu/cost-aid",
			model.PageAdmissions: "https://admission.princeton.edu/how-apply",
			model.PageDeadlines:  "https://admission.princeton.edu/how-apply/application-dates-deadlines",
			model.PagePrograms:   "https://www.princeton.edu/academics/areas-of-study",
			model.PageAid:        "https://finaid.princeton.edu/",
			model.PageAbout:      "https://www.princeton.edu/meet-princeton",
		},
	},
	{
		name: "Columbia",
		pages: map[model.PageType]string{
			model.PageFees:       "https://undergrad.admissions.columbia.edu/affordability/cost",
			model.PageAdmissions: "https://undergrad.admissions.columbia.edu/apply/first-year",
			model.PageDeadlines:  "https://undergrad.admissions.columbia.edu/apply/process/deadlines",
			model.PagePrograms:   "https://undergrad.admissions.columbia.edu/academics/majors",
			model.PageAid:        "https://cc-seas.financialaid.columbia.edu/",
			model.PageAbout:      "https://www.columbia.edu/content/about-columbia",
		},
	},
	{
		name: "Penn",
		pages: map[model.PageType]string{
			model.PageFees:       "https://srfs.upenn.edu/costs-budgeting",
			model.PageAdmissions: "https://admissions.upenn.edu/how-to-apply/first-year-applicants",
			model.PageDeadlines:  "https://admissions.upenn.edu/how-to-apply/deadlines-decisions",
			model.PagePrograms:   "https://www.upenn.edu/programs",
			model.PageAid:        "https://srfs.upenn.edu/financial-aid",
			model.PageAbout:      "https://www.upenn.edu/about",
		},
	},
	{
		name: "Brown",
		pages: map[model.PageType]string{
			model.PageFees:       "https://finaid.brown.edu/cost-attendance",
			model.PageAdmissions: "https://admission.brown.edu/apply/first-year-applicants",
			model.PageDeadlines:  "https://admission.brown.edu/apply/application-dates-deadlines",
			model.PagePrograms:   "https://www.brown.edu/academics/undergraduate/concentrations",
			model.PageAid:        "https://finaid.brown.edu/",
			model.PageAbout:      "https://www.brown.edu/about",
		},
	},
	{
		name: "Dartmouth",
		pages: map[model.PageType]string{
			model.PageFees:       "https://admissions.dartmouth.edu/afford/cost-attendance",
			model.PageAdmissions: "https://admissions.dartmouth.edu/apply/first-year",
			model.PageDeadlines:  "https://admissions.dartmouth.edu/apply/dates-deadlines",
			model.PagePrograms:   "https://home.dartmouth.edu/academics/undergraduate-majors",
			model.PageAid:        "https://admissions.dartmouth.edu/afford",
			model.PageAbout:      "https://home.dartmouth.edu/about",
		},
	},
	{
		name: "Cornell",
		pages: map[model.PageType]string{
			model.PageFees:       "https://finaid.cornell.edu/cost-attend",
			model.PageAdmissions: "https://admissions.cornell.edu/apply/first-year-applicants",
			model.PageDeadlines:  "https://admissions.cornell.edu/application-timeline",
			model.PagePrograms:   "https://admissions.cornell.edu/explore/majors",
			model.PageAid:        "https://finaid.cornell.edu/",
			model.PageAbout:      "https://www.cornell.edu/about/",
		},
	},
}

// Default returns the built-in ordered source list.
func Default() []model.Source {
	var out []model.Source
	for _, u := range defaults {
		for _, pt := range model.PageTypes {
			if url, ok := u.pages[pt]; ok {
				out = append(out, model.Source{University: u.name, PageType: pt, URL: url})
			}
		}
	}
	return out
}

// LoadFile reads a source list from a YAML file: a sequence of
// {university, page_type, url} entries.
func LoadFile(path string) ([]model.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var raw []struct {
		University string `yaml:"university"`
		PageType   string `yaml:"page_type"`
		URL        string `yaml:"url"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	sources := make([]model.Source, 0, len(raw))
	for i, r := range raw {
		pt, err := model.ParsePageType(r.PageType)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		if r.University == "" || r.URL == "" {
			return nil, fmt.Errorf("source %d: university and url are required", i)
		}
		sources = append(sources, model.Source{University: r.University, PageType: pt, URL: r.URL})
	}
	return sources, nil
}

// Universities returns the distinct university names in first-seen order.
func Universities(sources []model.Source) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sources {
		if !seen[s.University] {
			seen[s.University] = true
			out = append(out, s.University)
		}
	}
	return out
}

// ForUniversity filters the sources for one university, case-insensitively.
func ForUniversity(sources []model.Source, name string) []model.Source {
	var out []model.Source
	for _, s := range sources {
		if strings.EqualFold(s.University, name) {
			out = append(out, s)
		}
	}
	return out
}
