package main

import (
	"fmt"
	"io"

	"court-scheduler/internal/domain/calendar"
	reqdto "court-scheduler/internal/handler/dto/request"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type importFile struct {
	Calendars []importEntry `yaml:"calendars"`
}

type importEntry struct {
	CourtID           string                       `yaml:"courtId"`
	CompanyID         string                       `yaml:"companyId"`
	PricePerHourCents *int64                       `yaml:"pricePerHourCents"`
	Calendar          reqdto.UpdateCalendarRequest `yaml:"calendar"`
}

type importItem struct {
	Meta  calendar.CourtMeta
	Patch calendar.Patch
}

// parseImport decodes every entry up front so a bad file imports nothing.
func parseImport(r io.Reader) ([]importItem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f importFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode calendar file: %w", err)
	}

	items := make([]importItem, 0, len(f.Calendars))
	seen := make(map[uuid.UUID]bool, len(f.Calendars))
	for i, e := range f.Calendars {
		courtID, err := uuid.Parse(e.CourtID)
		if err != nil {
			return nil, fmt.Errorf("calendars[%d]: invalid courtId %q", i, e.CourtID)
		}
		if seen[courtID] {
			return nil, fmt.Errorf("calendars[%d]: court %s listed twice", i, courtID)
		}
		seen[courtID] = true

		meta := calendar.CourtMeta{CourtID: courtID, PricePerHourCents: e.PricePerHourCents}
		if e.CompanyID != "" {
			companyID, err := uuid.Parse(e.CompanyID)
			if err != nil {
				return nil, fmt.Errorf("calendars[%d]: invalid companyId %q", i, e.CompanyID)
			}
			meta.CompanyID = companyID
		}

		p, err := e.Calendar.ToPatch()
		if err != nil {
			return nil, fmt.Errorf("calendars[%d]: %w", i, err)
		}
		items = append(items, importItem{Meta: meta, Patch: p})
	}
	return items, nil
}
