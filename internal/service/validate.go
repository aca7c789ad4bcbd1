package service

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Validation is authoritative on the server. Failures are reported per field
// so the client can correct each one; normalizations that succeed (such as
// lowercasing the email) are surfaced as non-fatal notifications.

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// E.164: plus sign, then 8 to 15 digits, no leading zero.
	phonePattern   = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)
	routingPattern = regexp.MustCompile(`^[0-9]{9}$`)
	ssnPattern     = regexp.MustCompile(`^[0-9]{3}-?[0-9]{2}-?[0-9]{4}$`)
)

// allowedRegions is the closed set of supported region codes.
var allowedRegions = map[string]struct{}{
	"US": {}, "CA": {}, "GB": {}, "AU": {}, "DE": {}, "FR": {}, "ES": {}, "IT": {}, "NL": {},
}

const minimumAge = 18

const dateOfBirthLayout = "2006-01-02"

// SignupInput is the raw signup payload before normalization.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	Region      string
	DateOfBirth string
	SSN         string
}

type signupNormalized struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	Region      string
	DateOfBirth time.Time
	SSN         string
}

// validateSignup normalizes and validates the signup input. It returns the
// normalized values, non-fatal notifications, and per-field errors. All
// fields are checked; one failing field does not hide the others.
func validateSignup(input SignupInput, now time.Time) (signupNormalized, []string, map[string]string) {
	fields := map[string]string{}
	var notifications []string

	email := strings.TrimSpace(input.Email)
	if lowered := strings.ToLower(email); lowered != email {
		email = lowered
		notifications = append(notifications, "email was lowercased")
	}
	if !emailPattern.MatchString(email) {
		fields["email"] = "must be a valid email address"
	}

	if msg := passwordComplexity(input.Password); msg != "" {
		fields["password"] = msg
	}

	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		fields["firstName"] = "is required"
	}
	lastName := strings.TrimSpace(input.LastName)
	if lastName == "" {
		fields["lastName"] = "is required"
	}

	phone := strings.TrimSpace(input.Phone)
	if !phonePattern.MatchString(phone) {
		fields["phone"] = "must be in international format, e.g. +14155550123"
	}

	region := strings.ToUpper(strings.TrimSpace(input.Region))
	if _, ok := allowedRegions[region]; !ok {
		fields["region"] = "is not a supported region"
	}

	var dob time.Time
	if parsed, err := time.Parse(dateOfBirthLayout, strings.TrimSpace(input.DateOfBirth)); err != nil {
		fields["dateOfBirth"] = "must be a date in YYYY-MM-DD format"
	} else if age(parsed, now) < minimumAge {
		fields["dateOfBirth"] = "must be at least 18 years old"
	} else {
		dob = parsed
	}

	ssn := strings.TrimSpace(input.SSN)
	if !ssnPattern.MatchString(ssn) {
		fields["ssn"] = "must be a 9-digit social security number"
	}

	if len(fields) > 0 {
		return signupNormalized{}, notifications, fields
	}

	return signupNormalized{
		Email:       email,
		Password:    input.Password,
		FirstName:   firstName,
		LastName:    lastName,
		Phone:       phone,
		Region:      region,
		DateOfBirth: dob,
		SSN:         ssn,
	}, notifications, nil
}

func passwordComplexity(password string) string {
	if len(password) < 8 {
		return "must be at least 8 characters"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return "must contain an uppercase letter, a lowercase letter and a digit"
	}
	return ""
}

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
