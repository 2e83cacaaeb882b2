package veil

import (
	"math/rand/v2"
	"time"
)

// dateLayout is the wire format for date values.
const dateLayout = "2006-01-02"

// sameYearProvider generates a random date whose year equals the year of the
// original value.
type sameYearProvider struct {
	faker *Faker
}

// AlterValue returns a random birth-date-like date with the input's year.
// Empty input yields NULL. The input is a dateLayout string; a trailing time
// component is tolerated.
//
// When the randomly drawn date falls in a leap year its day is re-randomized
// within [1,25] before the year substitution, so a Feb 29 draw cannot turn
// into an invalid date in a non-leap target year.
func (p *sameYearProvider) AlterValue(original string, _ Args) (Value, error) {
	if original == "" {
		return Null(), nil
	}

	datePart := original
	if len(datePart) > len(dateLayout) {
		datePart = datePart[:len(dateLayout)]
	}
	parsed, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return Null(), invalidArg("sameyear", "value %q is not a %s date", original, dateLayout)
	}

	birth := randomBirthDate(p.faker.Base())
	if isLeapYear(birth.Year()) {
		day := 1 + rand.IntN(25)
		birth = time.Date(birth.Year(), birth.Month(), day, 0, 0, 0, 0, time.UTC)
	}

	out := time.Date(parsed.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	return NewValue(out.Format(dateLayout)), nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
