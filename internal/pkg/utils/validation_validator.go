package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"soulful-sync-service/internal/pkg/constvars"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("weekday", validateWeekday)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClock(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexClockHHMM).MatchString(fl.Field().String())
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, err := time.Parse("Monday", fl.Field().String())
	return err == nil
}
