package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"agenda/internal/core/recurrence"
	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/store"
	"agenda/internal/platform/testkit"
	ptime "agenda/internal/platform/time"
	actdom "agenda/internal/services/api/activity/domain"
	"agenda/internal/services/api/appointments/domain"
	"agenda/internal/services/api/appointments/repo"
)

const (
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
)

// memRepo is an owner scoped in-memory store
type memRepo struct {
	rows  map[string]repo.Row
	locks int
	calls int
	fail  error
}

func newMem() *memRepo { return &memRepo{rows: map[string]repo.Row{}} }

func (m *memRepo) LockOwner(ctx context.Context, ownerID string) error {
	m.locks++
	return nil
}

func (m *memRepo) ListByOwner(ctx context.Context, ownerID string) ([]repo.Row, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	var out []repo.Row
	for _, r := range m.rows {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// ListWindow returns a superset; the expander applies the exact bounds
func (m *memRepo) ListWindow(ctx context.Context, ownerID string, from, to time.Time) ([]repo.Row, error) {
	rows, err := m.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, r := range rows {
		if !r.StartTime.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) Get(ctx context.Context, ownerID, id string) (repo.Row, error) {
	m.calls++
	r, ok := m.rows[id]
	if !ok || r.OwnerID != ownerID {
		return repo.Row{}, perr.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) Insert(ctx context.Context, r repo.Row) error {
	m.calls++
	m.rows[r.ID] = r
	return nil
}

func (m *memRepo) Update(ctx context.Context, r repo.Row) (bool, error) {
	m.calls++
	cur, ok := m.rows[r.ID]
	if !ok || cur.OwnerID != r.OwnerID {
		return false, nil
	}
	m.rows[r.ID] = r
	return true, nil
}

func (m *memRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	m.calls++
	cur, ok := m.rows[id]
	if !ok || cur.OwnerID != ownerID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type fakeDB struct {
	txs  int
	inTx bool
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	var z store.CommandTag
	return z, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	var z store.Rows
	return z, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	var z store.Row
	return z
}

func (f *fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	f.txs++
	f.inTx = true
	defer func() { f.inTx = false }()
	return fn(f)
}

type recorder struct {
	events []actdom.Event
	err    error
	db     *fakeDB
	inTx   int
}

func (r *recorder) Record(ctx context.Context, ev actdom.Event) error {
	if r.db != nil && r.db.inTx {
		r.inTx++
	}
	r.events = append(r.events, ev)
	return r.err
}

type fixture struct {
	svc *Svc
	mem *memRepo
	db  *fakeDB
	act *recorder
}

func newFixture(t *testing.T, lock bool) fixture {
	t.Helper()
	mem := newMem()
	db := &fakeDB{}
	act := &recorder{db: db}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	svc := New(db, binder, Options{
		LockWrites: lock,
		Activity:   act,
		Now:        func() time.Time { return at("2023-10-10 12:00") },
	})
	return fixture{svc: svc, mem: mem, db: db, act: act}
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func input(title, start, end string) domain.AppointmentInput {
	return domain.AppointmentInput{
		Title:     title,
		StartTime: ptime.Naive{Time: at(start)},
		EndTime:   ptime.Naive{Time: at(end)},
	}
}

func series(in domain.AppointmentInput, iv recurrence.Interval, until string) domain.AppointmentInput {
	in.IsRecurring = true
	in.RecurrenceInterval = iv
	if until != "" {
		in.RecurrenceEndDate = &ptime.Date{Time: at(until + " 00:00")}
	}
	return in
}

func october() domain.Window {
	return domain.Window{From: at("2023-10-01 00:00"), To: at("2023-10-31 23:59")}
}

func mustCreate(t *testing.T, f fixture, owner string, in domain.AppointmentInput) domain.Appointment {
	t.Helper()
	a, err := f.svc.CreateDefinition(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("CreateDefinition(%s): %v", in.Title, err)
	}
	return a
}

func wantCode(t *testing.T, err error, code perr.ErrorCode) {
	t.Helper()
	if !perr.IsCode(err, code) {
		t.Fatalf("error = %v (code %v), want %v", err, perr.CodeOf(err), code)
	}
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return newMem() })
	testkit.MustPanic(t, func() { New(nil, binder, Options{}) })
	testkit.MustPanic(t, func() { New(&fakeDB{}, nil, Options{}) })
}

func TestCreate_NonRecurringIdentity(t *testing.T) {
	f := newFixture(t, false)
	a := mustCreate(t, f, alice, input("  Dentist ", "2023-10-15 10:00", "2023-10-15 11:00"))

	if a.Title != "Dentist" || a.Type != domain.TypeMeeting {
		t.Fatalf("normalised = %q / %q", a.Title, a.Type)
	}
	occ, err := f.svc.ListOccurrences(context.Background(), alice, october())
	if err != nil {
		t.Fatalf("ListOccurrences: %v", err)
	}
	if len(occ) != 1 || occ[0].ID != a.ID || !occ[0].StartTime.Equal(a.StartTime.Time) || !occ[0].EndTime.Equal(a.EndTime.Time) {
		t.Fatalf("occurrences = %+v", occ)
	}
	if len(f.act.events) != 1 || f.act.events[0].Kind != actdom.KindCreated {
		t.Fatalf("activity = %+v", f.act.events)
	}
}

func TestCreate_DailySeriesExpands(t *testing.T) {
	f := newFixture(t, false)
	a := mustCreate(t, f, alice, series(input("Standup", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Daily, "2023-10-03"))

	occ, err := f.svc.ListOccurrences(context.Background(), alice, october())
	if err != nil {
		t.Fatalf("ListOccurrences: %v", err)
	}
	want := []string{"2023-10-01 09:00", "2023-10-02 09:00", "2023-10-03 09:00"}
	if len(occ) != len(want) {
		t.Fatalf("len = %d, want %d", len(occ), len(want))
	}
	for i, o := range occ {
		if o.ID != a.ID {
			t.Fatalf("occurrence %d id = %s, want shared %s", i, o.ID, a.ID)
		}
		if got := o.StartTime.Format("2006-01-02 15:04"); got != want[i] {
			t.Fatalf("occurrence %d = %s, want %s", i, got, want[i])
		}
		if o.EndTime.Sub(o.StartTime.Time) != time.Hour {
			t.Fatalf("duration not preserved")
		}
	}
	if n := f.act.events[0].Occurrences; n != 3 {
		t.Fatalf("activity occurrences = %d, want 3", n)
	}
}

func TestCreate_Conflict(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))

	_, err := f.svc.CreateDefinition(context.Background(), alice, input("Call", "2023-10-15 10:30", "2023-10-15 11:30"))
	wantCode(t, err, perr.ErrorCodeConflict)
	if perr.HTTPStatus(err) != 409 {
		t.Fatalf("status = %d", perr.HTTPStatus(err))
	}
	testkit.MustContain(t, err.Error(), "2023-10-15")
	if len(f.mem.rows) != 1 {
		t.Fatalf("store changed on conflict: %d rows", len(f.mem.rows))
	}
	if last := f.act.events[len(f.act.events)-1]; last.Kind != actdom.KindConflict {
		t.Fatalf("last activity = %s", last.Kind)
	}

	// touching is fine, other owners are invisible
	mustCreate(t, f, alice, input("After", "2023-10-15 11:00", "2023-10-15 12:00"))
	mustCreate(t, f, bob, input("Bob", "2023-10-15 10:30", "2023-10-15 11:30"))
}

func TestCreate_RecurringConflictReportsFirstDate(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, input("Dentist", "2023-10-22 09:30", "2023-10-22 10:30"))

	_, err := f.svc.CreateDefinition(context.Background(), alice, series(input("Weekly", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Weekly, ""))
	wantCode(t, err, perr.ErrorCodeConflict)
	testkit.MustContain(t, err.Error(), "2023-10-22")
}

func TestCreate_InvalidIntervalBeforeStore(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))
	calls, txs := f.mem.calls, f.db.txs

	cases := []domain.AppointmentInput{
		input("Backwards", "2023-10-15 11:30", "2023-10-15 10:30"),
		input("Empty", "2023-10-15 10:30", "2023-10-15 10:30"),
	}
	for _, in := range cases {
		_, err := f.svc.CreateDefinition(context.Background(), alice, in)
		wantCode(t, err, perr.ErrorCodeValidation)
		if e, ok := perr.As(err); !ok || e.Field() != "end_time" {
			t.Fatalf("%s: field = %v", in.Title, err)
		}
	}
	if f.mem.calls != calls || f.db.txs != txs {
		t.Fatalf("store touched for an invalid interval")
	}
}

func TestCreate_UnknownInterval(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.CreateDefinition(context.Background(), alice, series(input("Odd", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Interval(9), ""))
	wantCode(t, err, perr.ErrorCodeValidation)
	if e, _ := perr.As(err); e.Field() != "recurrence_interval" {
		t.Fatalf("field = %q", e.Field())
	}

	// a non recurring definition ignores the interval
	in := input("Plain", "2023-10-01 09:00", "2023-10-01 10:00")
	in.RecurrenceInterval = recurrence.Interval(9)
	mustCreate(t, f, alice, in)
}

func TestListOccurrences_SingleAndWeekly(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, input("Dentist", "2023-10-15 14:00", "2023-10-15 15:00"))
	mustCreate(t, f, alice, series(input("Standup", "2023-10-02 09:00", "2023-10-02 09:30"), recurrence.Weekly, "2023-10-30"))

	occ, err := f.svc.ListOccurrences(context.Background(), alice, october())
	if err != nil {
		t.Fatalf("ListOccurrences: %v", err)
	}
	if len(occ) != 6 {
		t.Fatalf("len = %d, want 6", len(occ))
	}
	for i := 1; i < len(occ); i++ {
		if occ[i].StartTime.Before(occ[i-1].StartTime.Time) {
			t.Fatalf("not sorted at %d", i)
		}
	}
	if occ[2].Title != "Dentist" {
		t.Fatalf("third occurrence = %s, want Dentist", occ[2].Title)
	}
}

func TestListOccurrences_Window(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, series(input("Daily", "2023-09-01 08:00", "2023-09-01 08:15"), recurrence.Daily, ""))

	// default window is today-1 month .. today+3 months, today being 2023-10-10
	occ, err := f.svc.ListOccurrences(context.Background(), alice, domain.Window{})
	if err != nil {
		t.Fatalf("ListOccurrences: %v", err)
	}
	if first := occ[0].StartTime.Format("2006-01-02"); first != "2023-09-10" {
		t.Fatalf("first = %s", first)
	}
	if last := occ[len(occ)-1].StartTime.Format("2006-01-02"); last != "2024-01-09" {
		t.Fatalf("last = %s", last)
	}

	_, err = f.svc.ListOccurrences(context.Background(), alice, domain.Window{From: at("2023-10-05 00:00"), To: at("2023-10-01 00:00")})
	wantCode(t, err, perr.ErrorCodeValidation)
}

func TestUpdate_SelfExclusion(t *testing.T) {
	f := newFixture(t, false)
	in := series(input("Standup", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Daily, "")
	a := mustCreate(t, f, alice, in)

	in.Title = "Standup (moved)"
	got, err := f.svc.UpdateDefinition(context.Background(), alice, a.ID, in, true)
	if err != nil {
		t.Fatalf("resubmitting unchanged times must not conflict: %v", err)
	}
	if got.Title != "Standup (moved)" || got.ID != a.ID || !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("updated = %+v", got)
	}
}

func TestUpdate_ErrorOrder(t *testing.T) {
	f := newFixture(t, false)
	a := mustCreate(t, f, alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))
	mustCreate(t, f, alice, input("Lunch", "2023-10-15 12:00", "2023-10-15 13:00"))
	bad := input("Backwards", "2023-10-15 11:00", "2023-10-15 10:00")

	cases := []struct {
		name  string
		owner string
		id    string
		in    domain.AppointmentInput
		code  perr.ErrorCode
	}{
		{"missing beats invalid", alice, "33333333-3333-3333-3333-333333333333", bad, perr.ErrorCodeNotFound},
		{"malformed id", alice, "not-a-uuid", bad, perr.ErrorCodeNotFound},
		{"other owner", bob, a.ID, input("Mine", "2023-10-16 10:00", "2023-10-16 11:00"), perr.ErrorCodeNotFound},
		{"invalid beats conflict", alice, a.ID, input("Backwards", "2023-10-15 12:30", "2023-10-15 12:15"), perr.ErrorCodeValidation},
		{"conflict", alice, a.ID, input("Overlap", "2023-10-15 12:30", "2023-10-15 13:30"), perr.ErrorCodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.UpdateDefinition(context.Background(), tc.owner, tc.id, tc.in, false)
			wantCode(t, err, tc.code)
		})
	}
	if got := f.mem.rows[a.ID].Title; got != "Dentist" {
		t.Fatalf("failed updates changed the row: %s", got)
	}
}

func TestUpdate_AllFutureEventsFlag(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, input("Dentist", "2023-10-08 09:30", "2023-10-08 10:30"))
	s := mustCreate(t, f, alice, series(input("Daily", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Daily, "2023-10-05"))

	open := series(input("Daily", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Daily, "")
	_, err := f.svc.UpdateDefinition(context.Background(), alice, s.ID, open, true)
	wantCode(t, err, perr.ErrorCodeConflict)
	testkit.MustContain(t, err.Error(), "2023-10-08")

	// only the base interval is checked without the flag
	if _, err := f.svc.UpdateDefinition(context.Background(), alice, s.ID, open, false); err != nil {
		t.Fatalf("single instance update: %v", err)
	}
	if f.mem.rows[s.ID].RecurrenceEndDate != nil {
		t.Fatalf("update replaces the whole row")
	}
}

func TestDelete_WholeSeries(t *testing.T) {
	f := newFixture(t, false)
	a := mustCreate(t, f, alice, series(input("Daily", "2023-10-01 09:00", "2023-10-01 10:00"), recurrence.Daily, ""))

	wantCode(t, f.svc.DeleteDefinition(context.Background(), bob, a.ID, true), perr.ErrorCodeNotFound)
	wantCode(t, f.svc.DeleteDefinition(context.Background(), alice, "nope", true), perr.ErrorCodeNotFound)

	// the flag does not narrow the delete
	if err := f.svc.DeleteDefinition(context.Background(), alice, a.ID, false); err != nil {
		t.Fatalf("DeleteDefinition: %v", err)
	}
	occ, err := f.svc.ListOccurrences(context.Background(), alice, october())
	if err != nil || len(occ) != 0 {
		t.Fatalf("occurrences after delete = %d, %v", len(occ), err)
	}
	wantCode(t, f.svc.DeleteDefinition(context.Background(), alice, a.ID, true), perr.ErrorCodeNotFound)
	if last := f.act.events[len(f.act.events)-1]; last.Kind != actdom.KindDeleted {
		t.Fatalf("last activity = %s", last.Kind)
	}
}

func TestWrite_LocksOwnerWhenEnabled(t *testing.T) {
	for _, lock := range []bool{false, true} {
		f := newFixture(t, lock)
		mustCreate(t, f, alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))
		want := 0
		if lock {
			want = 1
		}
		if f.mem.locks != want || f.db.txs != 1 {
			t.Fatalf("lock=%v: locks=%d txs=%d", lock, f.mem.locks, f.db.txs)
		}
	}
}

func TestWrite_StoreFailure(t *testing.T) {
	f := newFixture(t, false)
	f.mem.fail = errors.New("connection reset")
	_, err := f.svc.CreateDefinition(context.Background(), alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))
	if err == nil {
		t.Fatalf("expected store error")
	}
	if perr.HTTPStatus(err) != 500 {
		t.Fatalf("status = %d, want 500", perr.HTTPStatus(err))
	}
}

func TestActivity_FailureDoesNotFailWrite(t *testing.T) {
	f := newFixture(t, false)
	f.act.err = errors.New("clickhouse down")
	mustCreate(t, f, alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))
}

func TestSearch_FoldsCaseAndAccents(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, input("Lunch", "2023-10-15 12:00", "2023-10-15 13:00"))
	in := input("Coffee", "2023-10-16 09:00", "2023-10-16 09:30")
	in.Location = "Café Central"
	mustCreate(t, f, alice, in)

	occ, err := f.svc.Search(context.Background(), alice, "CAFE", october())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(occ) != 1 || occ[0].Title != "Coffee" {
		t.Fatalf("search = %+v", occ)
	}
	all, _ := f.svc.Search(context.Background(), alice, "  ", october())
	if len(all) != 2 {
		t.Fatalf("blank query returns everything, got %d", len(all))
	}
}

func TestDay_AndUpcoming(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, series(input("Gym", "2023-10-09 18:00", "2023-10-09 19:00"), recurrence.Daily, ""))
	mustCreate(t, f, alice, input("Dentist", "2023-10-11 10:00", "2023-10-11 11:00"))

	day, err := f.svc.Day(context.Background(), alice, at("2023-10-11 15:00"))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(day) != 2 || day[0].Title != "Dentist" || day[1].Title != "Gym" {
		t.Fatalf("day = %+v", day)
	}

	// now is 2023-10-10 12:00
	up, err := f.svc.Upcoming(context.Background(), alice, 3)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	var got []string
	for _, o := range up {
		got = append(got, o.StartTime.Format("01-02 15:04"))
	}
	if strings.Join(got, ",") != "10-10 18:00,10-11 10:00,10-11 18:00" {
		t.Fatalf("upcoming = %v", got)
	}
}

func TestGetAndListAll(t *testing.T) {
	f := newFixture(t, false)
	b := mustCreate(t, f, alice, input("Second", "2023-10-16 10:00", "2023-10-16 11:00"))
	a := mustCreate(t, f, alice, input("First", "2023-10-15 10:00", "2023-10-15 11:00"))

	got, err := f.svc.Get(context.Background(), alice, a.ID)
	if err != nil || got.Title != "First" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	_, err = f.svc.Get(context.Background(), bob, a.ID)
	wantCode(t, err, perr.ErrorCodeNotFound)

	all, err := f.svc.ListAll(context.Background(), alice)
	if err != nil || len(all) != 2 || all[0].ID != a.ID || all[1].ID != b.ID {
		t.Fatalf("ListAll = %+v, %v", all, err)
	}
}

func TestExport(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, series(input("Standup", "2023-10-02 09:00", "2023-10-02 09:30"), recurrence.Weekly, "2023-10-30"))

	out, err := f.svc.Export(context.Background(), alice, october())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	testkit.MustContain(t, string(out), "BEGIN:VCALENDAR")
	testkit.MustContain(t, string(out), "RRULE:FREQ=WEEKLY;UNTIL=20231030T235959")
	testkit.MustContain(t, string(out), "SUMMARY:Standup")
}

func TestConflict_RecordedAfterTransaction(t *testing.T) {
	f := newFixture(t, true)
	dentist := mustCreate(t, f, alice, input("Dentist", "2023-10-15 10:00", "2023-10-15 11:00"))
	other := mustCreate(t, f, alice, input("Lunch", "2023-10-15 12:00", "2023-10-15 13:00"))

	_, err := f.svc.CreateDefinition(context.Background(), alice, input("Call", "2023-10-15 10:30", "2023-10-15 11:30"))
	wantCode(t, err, perr.ErrorCodeConflict)
	_, err = f.svc.UpdateDefinition(context.Background(), alice, other.ID, input("Lunch", "2023-10-15 10:45", "2023-10-15 11:45"), false)
	wantCode(t, err, perr.ErrorCodeConflict)

	var conflicts int
	for _, ev := range f.act.events {
		if ev.Kind == actdom.KindConflict {
			conflicts++
			testkit.MustContain(t, ev.Detail, dentist.ID)
		}
	}
	if conflicts != 2 {
		t.Fatalf("conflict events = %d, want 2", conflicts)
	}
	if f.act.inTx != 0 {
		t.Fatalf("%d activity events recorded inside a transaction", f.act.inTx)
	}
}

func TestWindow_SpanIsCapped(t *testing.T) {
	f := newFixture(t, false)
	mustCreate(t, f, alice, series(input("Daily", "2023-01-01 08:00", "2023-01-01 08:15"), recurrence.Daily, ""))

	wide := domain.Window{From: at("2023-01-01 00:00"), To: at("9999-12-31 23:59")}
	year := domain.Window{From: at("2023-01-01 00:00"), To: at("2024-01-01 00:00")}
	ctx := context.Background()

	calls := []struct {
		name string
		run  func(w domain.Window) error
	}{
		{"list", func(w domain.Window) error { _, err := f.svc.ListOccurrences(ctx, alice, w); return err }},
		{"search", func(w domain.Window) error { _, err := f.svc.Search(ctx, alice, "daily", w); return err }},
		{"export", func(w domain.Window) error { _, err := f.svc.Export(ctx, alice, w); return err }},
	}
	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			err := c.run(wide)
			wantCode(t, err, perr.ErrorCodeValidation)
			if field := perr.WireFrom(err).Field; field != "end" {
				t.Fatalf("field = %q, want end", field)
			}
			if err := c.run(year); err != nil {
				t.Fatalf("one year window: %v", err)
			}
		})
	}

	narrow := New(f.db, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f.mem }), Options{
		Now:       func() time.Time { return at("2023-10-10 12:00") },
		MaxWindow: 7 * 24 * time.Hour,
	})
	_, err := narrow.ListOccurrences(ctx, alice, october())
	wantCode(t, err, perr.ErrorCodeValidation)
}
