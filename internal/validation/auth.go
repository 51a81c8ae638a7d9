package validation

import (
	"unicode"

	"startup-directory.backend/internal/domain/entities"
)

const minPasswordLength = 8

// ValidateSignUp checks the registration form
func ValidateSignUp(in entities.SignUpInput) error {
	var errs Errors
	checkEmail(&errs, "email", in.Email)
	checkPassword(&errs, "password", in.Password)
	if in.ConfirmPassword != in.Password {
		errs.add("confirm_password", "passwords do not match")
	}
	if length(trim(in.FullName)) < 2 {
		errs.add("full_name", "must be at least 2 characters")
	}
	if in.Role != entities.UserRoleEntrepreneur && in.Role != entities.UserRoleInvestor {
		errs.add("role", "must be entrepreneur or investor")
	}
	if !in.AcceptTerms {
		errs.add("accept_terms", "terms must be accepted")
	}
	return errs.Err()
}

// ValidateSignIn checks the login form
func ValidateSignIn(in entities.SignInInput) error {
	var errs Errors
	checkEmail(&errs, "email", in.Email)
	if in.Password == "" {
		errs.add("password", "is required")
	}
	return errs.Err()
}

// ValidateResetPassword checks the recovery form
func ValidateResetPassword(in entities.ResetPasswordInput) error {
	var errs Errors
	checkEmail(&errs, "email", in.Email)
	return errs.Err()
}

// ValidateNewPassword checks the password change form
func ValidateNewPassword(in entities.NewPasswordInput) error {
	var errs Errors
	checkPassword(&errs, "password", in.Password)
	if in.ConfirmPassword != in.Password {
		errs.add("confirm_password", "passwords do not match")
	}
	return errs.Err()
}

func checkEmail(errs *Errors, field, value string) {
	value = trim(value)
	switch {
	case value == "":
		errs.add(field, "is required")
	case !isEmail(value):
		errs.add(field, "must be a valid email")
	}
}

func checkPassword(errs *Errors, field, password string) {
	if length(password) < minPasswordLength {
		errs.add(field, "must be at least 8 characters")
		return
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		errs.add(field, "must contain a lowercase letter, an uppercase letter and a digit")
	}
}
