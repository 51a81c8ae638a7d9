package validation

import (
	"startup-directory.backend/internal/domain/entities"
)

// ApplyStartupUpdate merges the allow-listed fields onto a copy of current
// and re-validates the resulting record. The slug follows the name. Approval
// and ownership fields are never touched.
func ApplyStartupUpdate(current *entities.Startup, in entities.StartupUpdateInput) (*entities.Startup, error) {
	form := formFromProfile(current.StartupProfile)
	if in.Name != nil {
		form.Name = *in.Name
	}
	if in.ShortDescription != nil {
		form.ShortDescription = *in.ShortDescription
	}
	if in.LongDescription != nil {
		form.LongDescription = *in.LongDescription
	}
	if in.FoundingYear != nil {
		form.FoundingYear = *in.FoundingYear
	}
	if in.OperatingStatus != nil {
		form.OperatingStatus = *in.OperatingStatus
	}
	if in.Location != nil {
		form.Location = *in.Location
	}
	if in.Tags != nil {
		form.Tags = *in.Tags
	}
	if in.EmployeeRange != nil {
		form.EmployeeRange = *in.EmployeeRange
	}
	if in.Website != nil {
		form.Website = *in.Website
	}
	if in.Email != nil {
		form.Email = *in.Email
	}
	if in.Phone != nil {
		form.Phone = *in.Phone
	}
	if in.SocialLinks != nil {
		form.SocialLinks = *in.SocialLinks
	}
	if in.FundingReceived != nil {
		form.FundingReceived = *in.FundingReceived
	}

	var errs Errors
	checkIdentity(&errs, form)
	checkCompany(&errs, form)
	checkContact(&errs, form)
	checkFunding(&errs, form, entities.SubmissionFiles{})
	if in.LogoURL != nil {
		checkOptionalURL(&errs, "logo_url", trim(*in.LogoURL))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	updated := *current
	updated.StartupProfile = NormalizeProfile(form)
	updated.LogoURL = current.LogoURL
	updated.PitchDeckURL = current.PitchDeckURL
	if in.LogoURL != nil {
		updated.LogoURL = optional(*in.LogoURL)
	}
	if in.PitchDeckURL != nil {
		updated.PitchDeckURL = optional(*in.PitchDeckURL)
	}
	return &updated, nil
}

func formFromProfile(p entities.StartupProfile) entities.SubmissionForm {
	return entities.SubmissionForm{
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		FoundingYear:     p.FoundingYear,
		Location:         p.Location,
		Tags:             p.Tags,
		EmployeeRange:    p.EmployeeRange.String,
		OperatingStatus:  string(p.OperatingStatus),
		Website:          p.Website.String,
		Email:            p.Email.String,
		Phone:            p.Phone.String,
		SocialLinks:      p.SocialLinks,
		FundingReceived:  p.FundingReceived.String,
	}
}
