package veil

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// fakeMethod produces one fake value from a locale-scoped generator.
type fakeMethod func(g *gofakeit.Faker, args Args) string

// fakeMethods is the fixed table of supported generator methods. The fake.*
// provider resolves the portion after the first dot against this table only;
// configuration never reaches arbitrary generator internals.
var fakeMethods = map[string]fakeMethod{
	"name":       func(g *gofakeit.Faker, _ Args) string { return g.Name() },
	"first_name": func(g *gofakeit.Faker, _ Args) string { return g.FirstName() },
	"last_name":  func(g *gofakeit.Faker, _ Args) string { return g.LastName() },
	"email":      func(g *gofakeit.Faker, _ Args) string { return g.Email() },
	"user_name":  func(g *gofakeit.Faker, _ Args) string { return g.Username() },
	"password": func(g *gofakeit.Faker, args Args) string {
		return g.Password(true, true, true, false, false, args.IntDefault("length", 12))
	},
	"phone_number":   func(g *gofakeit.Faker, _ Args) string { return g.PhoneFormatted() },
	"company":        func(g *gofakeit.Faker, _ Args) string { return g.Company() },
	"job":            func(g *gofakeit.Faker, _ Args) string { return g.JobTitle() },
	"address":        func(g *gofakeit.Faker, _ Args) string { return g.Address().Address },
	"street_address": func(g *gofakeit.Faker, _ Args) string { return g.Street() },
	"city":           func(g *gofakeit.Faker, _ Args) string { return g.City() },
	"state":          func(g *gofakeit.Faker, _ Args) string { return g.State() },
	"postcode":       func(g *gofakeit.Faker, _ Args) string { return g.Zip() },
	"country":        func(g *gofakeit.Faker, _ Args) string { return g.Country() },
	"url":            func(g *gofakeit.Faker, _ Args) string { return g.URL() },
	"domain_name":    func(g *gofakeit.Faker, _ Args) string { return g.DomainName() },
	"ipv4":           func(g *gofakeit.Faker, _ Args) string { return g.IPv4Address() },
	"uuid4":          func(g *gofakeit.Faker, _ Args) string { return g.UUID() },
	"ssn":            func(g *gofakeit.Faker, _ Args) string { return g.SSN() },
	"word":           func(g *gofakeit.Faker, _ Args) string { return g.Word() },
	"text": func(g *gofakeit.Faker, args Args) string {
		return g.Sentence(args.IntDefault("nb_words", 10))
	},
	"sentence": func(g *gofakeit.Faker, args Args) string {
		return g.Sentence(args.IntDefault("nb_words", 6))
	},
	"date": func(g *gofakeit.Faker, _ Args) string {
		return g.Date().Format(dateLayout)
	},
	"date_of_birth": func(g *gofakeit.Faker, _ Args) string {
		return randomBirthDate(g).Format(dateLayout)
	},
	"random_int": func(g *gofakeit.Faker, args Args) string {
		lo := args.IntDefault("min", 0)
		hi := args.IntDefault("max", 9999)
		if hi < lo {
			lo, hi = hi, lo
		}
		return strconv.Itoa(g.Number(lo, hi))
	},
	"random_digit": func(g *gofakeit.Faker, _ Args) string { return g.DigitN(1) },
}

// FakeMethods returns the supported fake.* method names, for introspection
// output.
func FakeMethods() []string {
	names := make([]string, 0, len(fakeMethods))
	for name := range fakeMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fakeProvider delegates to the fake-data generator. It is registered under
// the pattern "fake.+"; the concrete rule identifier arrives in the "name"
// argument, and the portion after the first dot selects the method.
type fakeProvider struct {
	faker *Faker
}

// AlterValue generates a fake value.
//
// Arguments: name (injected rule identifier), locale (optional), plus
// method-specific arguments such as length or nb_words.
func (p *fakeProvider) AlterValue(_ string, args Args) (Value, error) {
	name, ok := args.String("name")
	if !ok {
		return Null(), invalidArg("fake", "missing rule name")
	}
	_, path, found := strings.Cut(name, ".")
	if !found || path == "" {
		return Null(), invalidArg(name, "no generator method in rule identifier")
	}

	method, ok := fakeMethods[path]
	if !ok {
		return Null(), &ArgumentError{
			Err:    ErrUnknownFakeMethod,
			Rule:   name,
			Detail: "generator has no method " + strconv.Quote(path),
		}
	}

	locale, _ := args.String("locale")
	g, err := p.faker.Resolve(locale)
	if err != nil {
		return Null(), err
	}

	return NewValue(method(g, args)), nil
}

// randomBirthDate draws a date between 115 years ago and now, mirroring the
// age range of the original generator.
func randomBirthDate(g *gofakeit.Faker) time.Time {
	now := time.Now()
	return g.DateRange(now.AddDate(-115, 0, 0), now)
}
