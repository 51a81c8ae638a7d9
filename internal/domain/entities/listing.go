package entities

import "startup-directory.backend/pkg/utils"

// StartupFilter holds the public listing filters
type StartupFilter struct {
	Query         string
	Location      string
	Tags          []string
	YearFrom      *int
	YearTo        *int
	EmployeeRange string
	Page          int
}

// StartupPage is one page of listing results
type StartupPage struct {
	Items []StartupSummary     `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}
