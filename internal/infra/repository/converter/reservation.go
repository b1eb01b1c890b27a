package converter

import (
	"encoding/json"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) query.CreateReservationParams {
	snaps := res.Snapshots()

	params := query.CreateReservationParams{
		ID:                res.ID(),
		CourtID:           res.CourtID(),
		SubjectID:         res.SubjectID(),
		SubjectKind:       string(res.SubjectKind()),
		TeamSize:          int32(res.TeamSize()),
		Date:              DateToInfra(res.Date()),
		StartMinute:       int32(res.StartTime().Minutes()),
		EndMinute:         int32(res.EndTime().Minutes()),
		DurationMinutes:   int32(res.Duration()),
		Status:            res.Status().String(),
		PriceCents:        res.PriceCents(),
		PricePerHourCents: res.PricePerHourCents(),
		CourtSnapshot:     rawOrNil(snaps.Court),
		CompanySnapshot:   rawOrNil(snaps.Company),
		SubjectSnapshot:   rawOrNil(snaps.Subject),
		CreatedAt:         pgconv.TimeToPgtype(res.CreatedAt()),
	}

	if notes := res.Notes(); !notes.IsEmpty() {
		params.Notes = pgconv.StringToPgtype(notes.String())
	} else {
		params.Notes = pgtype.Text{Valid: false}
	}

	if email := res.ContactEmail(); email != "" {
		params.ContactEmail = pgconv.StringToPgtype(email)
	} else {
		params.ContactEmail = pgtype.Text{Valid: false}
	}

	return params
}

func ReservationStatusToInfra(res *reservation.Reservation) query.UpdateReservationStatusParams {
	return query.UpdateReservationStatusParams{
		ID:                 res.ID(),
		Status:             res.Status().String(),
		CancellationReason: pgconv.StringPtrToPgtype(res.CancellationReason()),
		CancelledAt:        pgconv.TimePtrToPgtype(res.CancelledAt()),
		UpdatedAt:          pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationFromInfra(row query.Reservations) *reservation.Reservation {
	var notes string
	if row.Notes.Valid {
		notes = row.Notes.String
	}
	var email string
	if row.ContactEmail.Valid {
		email = row.ContactEmail.String
	}

	return reservation.Reconstruct(reservation.Record{
		ID:                 row.ID,
		CourtID:            row.CourtID,
		SubjectID:          row.SubjectID,
		SubjectKind:        reservation.SubjectKind(row.SubjectKind),
		TeamSize:           int(row.TeamSize),
		Date:               DateFromInfra(row.Date),
		StartTime:          calendar.ClockTime(row.StartMinute),
		EndTime:            calendar.ClockTime(row.EndMinute),
		Duration:           int(row.DurationMinutes),
		Status:             reservation.Status(row.Status),
		PriceCents:         row.PriceCents,
		PricePerHourCents:  row.PricePerHourCents,
		Notes:              notes,
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		ContactEmail:       email,
		Snapshots: reservation.Snapshots{
			Court:   json.RawMessage(row.CourtSnapshot),
			Company: json.RawMessage(row.CompanySnapshot),
			Subject: json.RawMessage(row.SubjectSnapshot),
		},
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
		CancelledAt: pgconv.TimePtrFromPgtype(row.CancelledAt),
	})
}

func rawOrNil(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return m
}
