package validation

import (
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/pkg/utils"
)

// Wizard steps, validated in order
const (
	StepIdentity = iota + 1
	StepCompany
	StepContact
	StepFunding
	StepSubmitter
)

// TotalSteps is the number of wizard steps
const TotalSteps = StepSubmitter

const (
	MaxLogoSize      int64 = 5 << 20
	MaxPitchDeckSize int64 = 10 << 20
	maxFundingLength       = 200
	minTags                = 1
	maxTags                = 5
	minFoundingYear        = 1900
)

// ValidSubmission is the normalized outcome of the submission schema
type ValidSubmission struct {
	Profile        entities.StartupProfile
	SubmitterEmail string
}

// ValidateStep checks only the fields owned by one wizard step
func ValidateStep(step int, form entities.SubmissionForm, files entities.SubmissionFiles) Errors {
	var errs Errors
	switch step {
	case StepIdentity:
		checkIdentity(&errs, form)
	case StepCompany:
		checkCompany(&errs, form)
	case StepContact:
		checkContact(&errs, form)
	case StepFunding:
		checkFunding(&errs, form, files)
	case StepSubmitter:
		checkSubmitter(&errs, form)
	default:
		errs.add("step", fmt.Sprintf("must be between 1 and %d", TotalSteps))
	}
	return errs
}

// FirstInvalidStep returns the earliest step that does not validate, or
// TotalSteps when every step passes.
func FirstInvalidStep(form entities.SubmissionForm) int {
	for step := StepIdentity; step <= TotalSteps; step++ {
		if len(ValidateStep(step, form, entities.SubmissionFiles{})) > 0 {
			return step
		}
	}
	return TotalSteps
}

// ValidateSubmission runs every step and normalizes the form
func ValidateSubmission(form entities.SubmissionForm, files entities.SubmissionFiles) (*ValidSubmission, error) {
	var errs Errors
	for step := StepIdentity; step <= TotalSteps; step++ {
		errs = append(errs, ValidateStep(step, form, files)...)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &ValidSubmission{
		Profile:        NormalizeProfile(form),
		SubmitterEmail: strings.ToLower(trim(form.SubmitterEmail)),
	}, nil
}

// ValidateProfile checks a direct admin creation, which has no submitter step
func ValidateProfile(form entities.SubmissionForm, files entities.SubmissionFiles) (*entities.StartupProfile, error) {
	var errs Errors
	for step := StepIdentity; step <= StepFunding; step++ {
		errs = append(errs, ValidateStep(step, form, files)...)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	profile := NormalizeProfile(form)
	return &profile, nil
}

// NormalizeProfile trims the form, derives the slug and maps empty optional fields to null
func NormalizeProfile(form entities.SubmissionForm) entities.StartupProfile {
	name := trim(form.Name)
	return entities.StartupProfile{
		Name:             name,
		Slug:             utils.Slugify(name),
		ShortDescription: PlainText(form.ShortDescription),
		LongDescription:  PlainText(form.LongDescription),
		FoundingYear:     form.FoundingYear,
		OperatingStatus:  entities.StartupStatus(trim(form.OperatingStatus)),
		Location:         trim(form.Location),
		Tags:             cleanTags(form.Tags),
		EmployeeRange:    optional(form.EmployeeRange),
		Website:          optional(form.Website),
		Email:            optional(strings.ToLower(trim(form.Email))),
		Phone:            optional(form.Phone),
		SocialLinks:      cleanSocialLinks(form.SocialLinks),
		FundingReceived:  optional(form.FundingReceived),
	}
}

func checkIdentity(errs *Errors, form entities.SubmissionForm) {
	name := trim(form.Name)
	checkLength(errs, "name", name, 2, 100)
	if !errs.Has("name") && utils.Slugify(name) == "" {
		errs.add("name", "must contain at least one letter or digit")
	}
	checkLength(errs, "short_description", PlainText(form.ShortDescription), 20, 200)
	checkLength(errs, "long_description", PlainText(form.LongDescription), 100, 2000)
}

func checkCompany(errs *Errors, form entities.SubmissionForm) {
	checkFoundingYear(errs, form.FoundingYear)
	checkLength(errs, "location", trim(form.Location), 2, 100)
	checkTags(errs, form.Tags)
	if r := trim(form.EmployeeRange); r != "" && !oneOf(r, entities.EmployeeRanges) {
		errs.add("employee_range", "must be one of "+strings.Join(entities.EmployeeRanges, ", "))
	}
	if !oneOf(entities.StartupStatus(trim(form.OperatingStatus)), entities.StartupStatuses) {
		errs.add("operating_status", "must be one of active, acquired, closed")
	}
}

func checkContact(errs *Errors, form entities.SubmissionForm) {
	checkOptionalURL(errs, "website", trim(form.Website))
	if e := trim(form.Email); e != "" && !isEmail(e) {
		errs.add("email", "must be a valid email")
	}
	if p := trim(form.Phone); p != "" && !isPhone(p) {
		errs.add("phone", "invalid phone format")
	}
	checkSocialLinks(errs, form.SocialLinks)
}

func checkFunding(errs *Errors, form entities.SubmissionForm, files entities.SubmissionFiles) {
	if length(trim(form.FundingReceived)) > maxFundingLength {
		errs.add("funding_received", fmt.Sprintf("must be at most %d characters", maxFundingLength))
	}
	if f := files.Logo; f != nil {
		if !strings.HasPrefix(f.ContentType, "image/") {
			errs.add("logo", "must be an image")
		}
		if f.Size > MaxLogoSize {
			errs.add("logo", "must be at most 5MB")
		}
	}
	if f := files.PitchDeck; f != nil {
		if f.ContentType != "application/pdf" {
			errs.add("pitch_deck", "must be a PDF")
		}
		if f.Size > MaxPitchDeckSize {
			errs.add("pitch_deck", "must be at most 10MB")
		}
	}
}

func checkSubmitter(errs *Errors, form entities.SubmissionForm) {
	e := trim(form.SubmitterEmail)
	switch {
	case e == "":
		errs.add("submitter_email", "is required")
	case !isEmail(e):
		errs.add("submitter_email", "must be a valid email")
	}
}

func checkFoundingYear(errs *Errors, year int) {
	if year < minFoundingYear || year > currentYear() {
		errs.add("founding_year", fmt.Sprintf("must be between %d and %d", minFoundingYear, currentYear()))
	}
}

func checkTags(errs *Errors, tags []string) {
	cleaned := cleanTags(tags)
	switch {
	case len(cleaned) < minTags:
		errs.add("tags", "select at least one sector")
		return
	case len(cleaned) > maxTags:
		errs.add("tags", fmt.Sprintf("at most %d sectors", maxTags))
		return
	}
	for _, tag := range cleaned {
		if !oneOf(tag, entities.Sectors) {
			errs.add("tags", fmt.Sprintf("unknown sector %q", tag))
			return
		}
	}
}

func checkSocialLinks(errs *Errors, links entities.SocialLinks) {
	for network, link := range links {
		if !oneOf(network, entities.SocialNetworks) {
			errs.add("social_links."+network, "unsupported social network")
			continue
		}
		checkOptionalURL(errs, "social_links."+network, trim(link))
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = trim(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func cleanSocialLinks(links entities.SocialLinks) entities.SocialLinks {
	out := entities.SocialLinks{}
	for network, link := range links {
		if link = trim(link); link != "" {
			out[network] = link
		}
	}
	return out
}

func optional(s string) null.String {
	s = trim(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
