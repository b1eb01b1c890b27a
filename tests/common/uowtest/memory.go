//go:build unit || e2e

// Package uowtest provides an in-memory shared.UnitOfWork for command tests.
// Each Within call works on a copy of the committed state and publishes it only
// when fn returns nil, so a failing transaction leaves nothing behind.
package uowtest

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// Operations that can be made to fail with FailOn.
const (
	OpCalendarInsert     = "calendars.insert"
	OpCalendarUpdate     = "calendars.update"
	OpReservationCreate  = "reservations.create"
	OpReservationUpdate  = "reservations.update_status"
	OpIdempotencyInsert  = "idempotency.try_insert"
	OpIdempotencyRelease = "idempotency.release"
	OpIdempotencyDone    = "idempotency.update_completed"
	OpNotificationCreate = "notifications.create"
	OpNotificationUpdate = "notifications.update_status"
)

type IdempotencyKey struct {
	Key    uuid.UUID
	UserID uuid.UUID
}

// Job is an outbox row as the store keeps it.
type Job struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Status    string
	Attempts  int
	LastError *string
}

type state struct {
	calendars    map[uuid.UUID]calendar.Snapshot
	reservations map[uuid.UUID]reservation.Record
	idempotency  map[IdempotencyKey]shared.IdempotencyRecord
	jobs         []Job
}

func (s state) clone() state {
	return state{
		calendars:    maps.Clone(s.calendars),
		reservations: maps.Clone(s.reservations),
		idempotency:  maps.Clone(s.idempotency),
		jobs:         slices.Clone(s.jobs),
	}
}

type Store struct {
	mu       sync.Mutex
	clock    clock.Clock
	state    state
	failures map[string]error
	commits  int
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		clock: clk,
		state: state{
			calendars:    map[uuid.UUID]calendar.Snapshot{},
			reservations: map[uuid.UUID]reservation.Record{},
			idempotency:  map[IdempotencyKey]shared.IdempotencyRecord{},
		},
		failures: map[string]error{},
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Seeding

func (s *Store) PutCalendar(cfg *calendar.CalendarConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.calendars[cfg.CourtID()] = cfg.Snapshot()
}

func (s *Store) PutReservation(res *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.reservations[res.ID()] = RecordOf(res)
}

func (s *Store) PutIdempotency(rec shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.idempotency[IdempotencyKey{Key: rec.Key, UserID: rec.UserID}] = rec
}

func (s *Store) PutJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = shared.JobQueued
	}
	s.state.jobs = append(s.state.jobs, job)
}

// Inspection

func (s *Store) Calendar(courtID uuid.UUID) (*calendar.CalendarConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.state.calendars[courtID]
	if !ok {
		return nil, false
	}
	return calendar.Reconstruct(snap), true
}

func (s *Store) Reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.state.reservations[id]
	if !ok {
		return nil, false
	}
	return reservation.Reconstruct(rec), true
}

func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.reservations)
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.state.idempotency[IdempotencyKey{Key: key, UserID: userID}]
	return rec, ok
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.jobs)
}

// Commits counts the transactions that committed.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// UnitOfWork

type UoW struct {
	store *Store
}

var _ shared.UnitOfWork = (*UoW)(nil)

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, st: s.state.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.state = tx.st
	s.commits++
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

// CommandReads reads committed state. It must not be called from inside Within.
func (u *UoW) CommandReads() shared.CommandReads {
	return committedReads{store: u.store}
}

type committedReads struct {
	store *Store
}

func (r committedReads) CalendarByCourtID(ctx context.Context, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return stateReads{st: &r.store.state}.CalendarByCourtID(ctx, courtID)
}

func (r committedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return stateReads{st: &r.store.state}.IdempotencyByKey(ctx, key, userID)
}

type memTx struct {
	store *Store
	st    state
}

func (t *memTx) Calendars() shared.CalendarRepository         { return calendarRepo{t} }
func (t *memTx) Reservations() shared.ReservationRepository   { return reservationRepo{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t} }
func (t *memTx) Notifications() shared.NotificationRepository { return notificationRepo{t} }
func (t *memTx) Reads() shared.CommandReads                   { return stateReads{st: &t.st} }
func (t *memTx) DB() query.DBTX                               { return nil }

func (t *memTx) fail(op string) error {
	return t.store.failures[op]
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type stateReads struct {
	st *state
}

func (r stateReads) CalendarByCourtID(_ context.Context, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	snap, ok := r.st.calendars[courtID]
	if !ok {
		return nil, notFound("calendar not found")
	}
	return calendar.Reconstruct(snap), nil
}

func (r stateReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[IdempotencyKey{Key: key, UserID: userID}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

type calendarRepo struct{ tx *memTx }

func (r calendarRepo) FindForUpdate(_ context.Context, _ query.DBTX, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	snap, ok := r.tx.st.calendars[courtID]
	if !ok {
		return nil, notFound("calendar not found")
	}
	return calendar.Reconstruct(snap), nil
}

func (r calendarRepo) Insert(_ context.Context, _ query.DBTX, cfg *calendar.CalendarConfig) (bool, error) {
	if err := r.tx.fail(OpCalendarInsert); err != nil {
		return false, err
	}
	if _, ok := r.tx.st.calendars[cfg.CourtID()]; ok {
		return false, nil
	}
	r.tx.st.calendars[cfg.CourtID()] = cfg.Snapshot()
	return true, nil
}

func (r calendarRepo) Update(_ context.Context, _ query.DBTX, cfg *calendar.CalendarConfig) error {
	if err := r.tx.fail(OpCalendarUpdate); err != nil {
		return err
	}
	if _, ok := r.tx.st.calendars[cfg.CourtID()]; !ok {
		return notFound("calendar not found")
	}
	r.tx.st.calendars[cfg.CourtID()] = cfg.Snapshot()
	return nil
}

type reservationRepo struct{ tx *memTx }

func (r reservationRepo) LockCourtDay(context.Context, query.DBTX, uuid.UUID, calendar.Date) error {
	return nil
}

func (r reservationRepo) ListBlocking(_ context.Context, _ query.DBTX, courtID uuid.UUID, date calendar.Date) ([]slot.Booking, error) {
	var out []slot.Booking
	for _, rec := range r.tx.st.reservations {
		if rec.CourtID != courtID || !rec.Date.Equal(date) || !rec.Status.Blocking() {
			continue
		}
		out = append(out, slot.Booking{Start: rec.StartTime, End: rec.EndTime, Blocking: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// Create enforces the same overlap exclusion the database does.
func (r reservationRepo) Create(_ context.Context, _ query.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	if err := r.tx.fail(OpReservationCreate); err != nil {
		return uuid.Nil, err
	}
	candidate := res.Interval()
	for _, rec := range r.tx.st.reservations {
		if rec.CourtID != res.CourtID() || !rec.Date.Equal(res.Date()) || !rec.Status.Blocking() {
			continue
		}
		if candidate.Overlaps(slot.Interval{Start: rec.StartTime, End: rec.EndTime}) {
			return uuid.Nil, infra.WrapRepoErr("failed to create reservation", nil, infra.KindConflict)
		}
	}
	r.tx.st.reservations[res.ID()] = RecordOf(res)
	return res.ID(), nil
}

func (r reservationRepo) FindForUpdate(_ context.Context, _ query.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	rec, ok := r.tx.st.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return reservation.Reconstruct(rec), nil
}

func (r reservationRepo) UpdateStatus(_ context.Context, _ query.DBTX, res *reservation.Reservation) error {
	if err := r.tx.fail(OpReservationUpdate); err != nil {
		return err
	}
	if _, ok := r.tx.st.reservations[res.ID()]; !ok {
		return notFound("reservation not found")
	}
	r.tx.st.reservations[res.ID()] = RecordOf(res)
	return nil
}

func (r reservationRepo) ListElapsedConfirmed(_ context.Context, _ query.DBTX, today calendar.Date, nowMinute, limit int) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, rec := range r.tx.st.reservations {
		if rec.Status != reservation.StatusConfirmed {
			continue
		}
		if rec.Date.Before(today) || (rec.Date.Equal(today) && rec.EndTime.Minutes() <= nowMinute) {
			out = append(out, reservation.Reconstruct(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date().Equal(out[j].Date()) {
			return out[i].Date().Before(out[j].Date())
		}
		return out[i].StartTime() < out[j].StartTime()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type idempotencyRepo struct{ tx *memTx }

func (r idempotencyRepo) TryInsert(_ context.Context, _ query.DBTX, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	if err := r.tx.fail(OpIdempotencyInsert); err != nil {
		return false, err
	}
	k := IdempotencyKey{Key: key, UserID: userID}
	if _, ok := r.tx.st.idempotency[k]; ok {
		return false, nil
	}
	r.tx.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) UpdateStatusCompleted(_ context.Context, _ query.DBTX, key, userID uuid.UUID, _ string, reservationID uuid.UUID) error {
	if err := r.tx.fail(OpIdempotencyDone); err != nil {
		return err
	}
	k := IdempotencyKey{Key: key, UserID: userID}
	rec, ok := r.tx.st.idempotency[k]
	if !ok {
		return notFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultReservationID = &reservationID
	r.tx.st.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, _ query.DBTX, key, userID uuid.UUID) error {
	if err := r.tx.fail(OpIdempotencyRelease); err != nil {
		return err
	}
	k := IdempotencyKey{Key: key, UserID: userID}
	if rec, ok := r.tx.st.idempotency[k]; ok && rec.Status == shared.IdempotencyProcessing {
		delete(r.tx.st.idempotency, k)
	}
	return nil
}

func (r idempotencyRepo) ClaimExpired(_ context.Context, _ query.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	k := IdempotencyKey{Key: key, UserID: userID}
	rec, ok := r.tx.st.idempotency[k]
	if !ok || !rec.Expired(r.tx.store.clock.Now()) {
		return false, nil
	}
	r.tx.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, _ query.DBTX, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.tx.st.idempotency {
		if rec.Expired(now) {
			delete(r.tx.st.idempotency, k)
			n++
		}
	}
	return n, nil
}

type notificationRepo struct{ tx *memTx }

func (r notificationRepo) CreateJob(_ context.Context, _ query.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if err := r.tx.fail(OpNotificationCreate); err != nil {
		return err
	}
	r.tx.st.jobs = append(r.tx.st.jobs, Job{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: slices.Clone(payload),
		RunAt:   runAt,
		Status:  shared.JobQueued,
	})
	return nil
}

func (r notificationRepo) LeaseDue(_ context.Context, _ query.DBTX, now, leaseUntil time.Time, limit int) ([]shared.NotificationJob, error) {
	due := make([]int, 0, len(r.tx.st.jobs))
	for i, j := range r.tx.st.jobs {
		if j.Status == shared.JobQueued && !j.RunAt.After(now) {
			due = append(due, i)
		}
	}
	jobs := r.tx.st.jobs
	sort.SliceStable(due, func(a, b int) bool { return jobs[due[a]].RunAt.Before(jobs[due[b]].RunAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	out := make([]shared.NotificationJob, len(due))
	for n, i := range due {
		j := &jobs[i]
		j.Attempts++
		j.RunAt = leaseUntil
		out[n] = shared.NotificationJob{
			ID:       j.ID,
			Kind:     j.Kind,
			Topic:    j.Topic,
			Payload:  j.Payload,
			Attempts: j.Attempts,
		}
	}
	return out, nil
}

func (r notificationRepo) UpdateJobStatus(_ context.Context, _ query.DBTX, jobID uuid.UUID, status string, lastError *string, retryAt *time.Time) error {
	if err := r.tx.fail(OpNotificationUpdate); err != nil {
		return err
	}
	for i := range r.tx.st.jobs {
		j := &r.tx.st.jobs[i]
		if j.ID != jobID {
			continue
		}
		j.Status = status
		j.LastError = lastError
		if retryAt != nil {
			j.RunAt = *retryAt
		}
		return nil
	}
	return notFound("notification job not found")
}

// RecordOf flattens a reservation into its persisted shape.
func RecordOf(res *reservation.Reservation) reservation.Record {
	return reservation.Record{
		ID:                 res.ID(),
		CourtID:            res.CourtID(),
		SubjectID:          res.SubjectID(),
		SubjectKind:        res.SubjectKind(),
		TeamSize:           res.TeamSize(),
		Date:               res.Date(),
		StartTime:          res.StartTime(),
		EndTime:            res.EndTime(),
		Duration:           res.Duration(),
		Status:             res.Status(),
		PriceCents:         res.PriceCents(),
		PricePerHourCents:  res.PricePerHourCents(),
		Notes:              res.Notes().String(),
		CancellationReason: res.CancellationReason(),
		ContactEmail:       res.ContactEmail(),
		Snapshots:          res.Snapshots(),
		CreatedAt:          res.CreatedAt(),
		UpdatedAt:          res.UpdatedAt(),
		CancelledAt:        res.CancelledAt(),
	}
}
