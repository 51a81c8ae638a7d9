package repositories

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/pkg/utils"
)

func testProfile(name string, year int) entities.StartupProfile {
	return entities.StartupProfile{
		Name:             name,
		Slug:             utils.Slugify(name),
		ShortDescription: "A short description for " + name,
		LongDescription:  strings.Repeat("Long description text. ", 6),
		FoundingYear:     year,
		OperatingStatus:  entities.StartupStatusActive,
		Location:         "Valencia",
		Tags:             []string{"SaaS"},
		EmployeeRange:    null.StringFrom("1-10"),
		Email:            null.StringFrom("hello@example.com"),
		Phone:            null.StringFrom("+34 600 000 000"),
		SocialLinks:      entities.SocialLinks{"linkedin": "https://linkedin.com/company/x"},
		PitchDeckURL:     null.StringFrom("submissions/1-x-pitch.pdf"),
	}
}

func testStartup(name string, year int, approved bool, createdAt time.Time) *entities.Startup {
	return &entities.Startup{
		ID:             uuid.New(),
		StartupProfile: testProfile(name, year),
		IsApproved:     approved,
		CreatedAt:      createdAt,
	}
}
