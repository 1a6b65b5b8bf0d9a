// Package seed loads a realistic parish configuration into an empty
// database: the usual Sunday and weekday mass times, the standard liturgical
// ministries and a year of major celebrations.
package seed

import (
	"log/slog"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/repository"
)

var massRoles = []*domain.MassRole{
	{Name: "Lector", Required: true, Count: 2},
	{Name: "Extraordinary Minister", Required: true, Count: 2},
	{Name: "Altar Server", Required: true, Count: 2},
	{Name: "Usher", Required: false, Count: 2},
	{Name: "Cantor", Required: false, Count: 1},
	{Name: "Sacristan", Required: true, Count: 1},
}

var massTimeTemplates = []*domain.MassTimeTemplate{
	{
		Name:      "Sunday Masses",
		DayOfWeek: domain.DaySunday,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{Time: "17:30:00", DayType: domain.DayTypeDayBefore, Name: "Saturday Vigil Mass"},
			{Time: "08:00:00", DayType: domain.DayTypeSameDay, Name: "Early Sunday Mass"},
			{Time: "10:30:00", DayType: domain.DayTypeSameDay, Name: "Sunday Family Mass"},
			{Time: "18:00:00", DayType: domain.DayTypeSameDay, Name: "Sunday Evening Mass"},
		},
	},
	{
		Name:      "Wednesday Mass",
		DayOfWeek: domain.DayWednesday,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{Time: "09:00:00", DayType: domain.DayTypeSameDay},
		},
	},
	{
		Name:      "First Friday Devotion",
		DayOfWeek: domain.DayFriday,
		IsActive:  false,
		Items: []domain.MassTimeTemplateItem{
			{Time: "19:00:00", DayType: domain.DayTypeSameDay},
		},
	},
	{
		Name:      "Holy Days",
		DayOfWeek: domain.DayMovable,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{Time: "19:00:00", DayType: domain.DayTypeDayBefore, Name: "Vigil Mass"},
			{Time: "10:00:00", DayType: domain.DayTypeSameDay, Name: "Solemn Mass"},
		},
	},
}

func liturgicalEvents(year int) []*domain.LiturgicalEvent {
	date := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	return []*domain.LiturgicalEvent{
		{Date: date(time.January, 1), Name: "Mary, Mother of God", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.January, 6), Name: "The Epiphany of the Lord", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.March, 19), Name: "Saint Joseph", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.March, 25), Name: "The Annunciation of the Lord", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.June, 29), Name: "Saints Peter and Paul", Colors: []string{"red"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.August, 15), Name: "The Assumption of the Blessed Virgin Mary", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.November, 1), Name: "All Saints", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.November, 2), Name: "All Souls", Colors: []string{"violet", "black"}, Grade: 2, GradeAbbr: "F", Type: "FEAST"},
		{Date: date(time.December, 8), Name: "The Immaculate Conception", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
		{Date: date(time.December, 25), Name: "The Nativity of the Lord", Colors: []string{"white"}, Grade: 1, GradeAbbr: "S", Type: "SOLEMNITY"},
	}
}

// SeedParishData inserts the fixture configuration. It is not idempotent,
// run it against an empty database only.
func SeedParishData(r *repository.Repository, year int) {
	for _, role := range massRoles {
		if err := r.CreateMassRole(role); err != nil {
			slog.Error("failed to insert mass role", slog.String("name", role.Name), slog.String("error", err.Error()))
			return
		}
	}
	slog.Info("mass roles inserted", slog.Int("count", len(massRoles)))

	for _, tmpl := range massTimeTemplates {
		if err := r.CreateMassTimeTemplate(tmpl); err != nil {
			slog.Error("failed to insert template", slog.String("name", tmpl.Name), slog.String("error", err.Error()))
			return
		}
	}
	slog.Info("mass time templates inserted", slog.Int("count", len(massTimeTemplates)))

	events := liturgicalEvents(year)
	for _, event := range events {
		if err := r.CreateLiturgicalEvent(event); err != nil {
			slog.Error("failed to insert liturgical event", slog.String("name", event.Name), slog.String("error", err.Error()))
			return
		}
	}
	slog.Info("liturgical events inserted", slog.Int("count", len(events)), slog.Int("year", year))
}
