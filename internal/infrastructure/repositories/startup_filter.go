package repositories

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"startup-directory.backend/internal/domain/entities"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// applyStartupFilter narrows query to approved startups matching every set filter
func applyStartupFilter(query *gorm.DB, f entities.StartupFilter) *gorm.DB {
	query = query.Where("startups.is_approved = ?", true)

	if q := strings.TrimSpace(f.Query); q != "" {
		p := containsPattern(q)
		query = query.Where(
			`(LOWER(startups.name) LIKE ? ESCAPE '\' OR LOWER(startups.short_description) LIKE ? ESCAPE '\' OR LOWER(startups.long_description) LIKE ? ESCAPE '\')`,
			p, p, p,
		)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		query = query.Where(`LOWER(startups.location) LIKE ? ESCAPE '\'`, containsPattern(loc))
	}
	if tags := nonEmpty(f.Tags); len(tags) > 0 {
		query = applyTagOverlap(query, tags)
	}
	if f.YearFrom != nil {
		query = query.Where("startups.founding_year >= ?", *f.YearFrom)
	}
	if f.YearTo != nil {
		query = query.Where("startups.founding_year <= ?", *f.YearTo)
	}
	if r := strings.TrimSpace(f.EmployeeRange); r != "" {
		query = query.Where("startups.employee_range = ?", r)
	}
	return query
}

// applyTagOverlap matches rows sharing at least one tag with tags.
// Postgres uses the array overlap operator; other dialects see the array
// literal as text and fall back to substring matching.
func applyTagOverlap(query *gorm.DB, tags []string) *gorm.DB {
	if query.Dialector.Name() == "postgres" {
		return query.Where("startups.tags && ?", pq.Array(tags))
	}
	conds := make([]string, 0, len(tags))
	args := make([]interface{}, 0, len(tags))
	for _, t := range tags {
		conds = append(conds, "instr(startups.tags, ?) > 0")
		args = append(args, t)
	}
	return query.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
