package repositories

import (
	"encoding/json"

	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/internal/infrastructure/models"
)

func profileToModel(p entities.StartupProfile) (models.StartupProfile, error) {
	links := p.SocialLinks
	if links == nil {
		links = entities.SocialLinks{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return models.StartupProfile{}, err
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.StartupProfile{
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		LogoURL:          p.LogoURL.Ptr(),
		FoundingYear:     p.FoundingYear,
		OperatingStatus:  string(p.OperatingStatus),
		Location:         p.Location,
		Tags:             pq.StringArray(tags),
		EmployeeRange:    p.EmployeeRange.Ptr(),
		Website:          p.Website.Ptr(),
		Email:            p.Email.Ptr(),
		Phone:            p.Phone.Ptr(),
		SocialLinks:      string(raw),
		FundingReceived:  p.FundingReceived.Ptr(),
		PitchDeckURL:     p.PitchDeckURL.Ptr(),
	}, nil
}

func profileFromModel(m models.StartupProfile) entities.StartupProfile {
	links := entities.SocialLinks{}
	if m.SocialLinks != "" {
		// rows written outside the API may hold malformed JSON; treat as empty
		_ = json.Unmarshal([]byte(m.SocialLinks), &links)
	}
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return entities.StartupProfile{
		Name:             m.Name,
		Slug:             m.Slug,
		ShortDescription: m.ShortDescription,
		LongDescription:  m.LongDescription,
		LogoURL:          null.StringFromPtr(m.LogoURL),
		FoundingYear:     m.FoundingYear,
		OperatingStatus:  entities.StartupStatus(m.OperatingStatus),
		Location:         m.Location,
		Tags:             tags,
		EmployeeRange:    null.StringFromPtr(m.EmployeeRange),
		Website:          null.StringFromPtr(m.Website),
		Email:            null.StringFromPtr(m.Email),
		Phone:            null.StringFromPtr(m.Phone),
		SocialLinks:      links,
		FundingReceived:  null.StringFromPtr(m.FundingReceived),
		PitchDeckURL:     null.StringFromPtr(m.PitchDeckURL),
	}
}

// profileColumns lists the update map for the shared profile columns
func profileColumns(m models.StartupProfile) map[string]interface{} {
	return map[string]interface{}{
		"name":              m.Name,
		"slug":              m.Slug,
		"short_description": m.ShortDescription,
		"long_description":  m.LongDescription,
		"logo_url":          m.LogoURL,
		"founding_year":     m.FoundingYear,
		"operating_status":  m.OperatingStatus,
		"location":          m.Location,
		"tags":              m.Tags,
		"employee_range":    m.EmployeeRange,
		"website":           m.Website,
		"email":             m.Email,
		"phone":             m.Phone,
		"social_links":      m.SocialLinks,
		"funding_received":  m.FundingReceived,
		"pitch_deck_url":    m.PitchDeckURL,
	}
}
