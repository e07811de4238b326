package dto

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// toValidationError converts ozzo errors into the API's per-field error shape.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			if ferr != nil {
				fields[field] = ferr.Error()
			}
		}
		return apperrors.NewFieldValidationError("validation failed", fields)
	}
	return apperrors.NewInternalError(err)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func lowerPtr(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// parseDeadline accepts a calendar date or an RFC3339 timestamp.
func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

var deadlineRule = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, err := parseDeadline(s); err != nil {
		return errors.New("invalid date format for applicationDeadline")
	}
	return nil
})

var skillsRule = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	skills, _ := v.([]string)
	for _, s := range skills {
		if strings.TrimSpace(s) == "" || len(s) > 50 {
			return errors.New("each skill must be a non-empty string with max length 50")
		}
	}
	return nil
})
