package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/repositories"
)

func newBookingServiceMock(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		RoomRepo:    repositories.RoomRepository{DB: db},
		UserRepo:    repositories.UserRepository{DB: db},
		RequestID:   "test",
	}
	return svc, mock, func() { db.Close() }
}

func bookingRows(id, roomID, userID int64, checkIn time.Time, checkOut *time.Time, status string) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "room_id", "user_id", "check_in", "check_out", "status", "created_at", "updated_at",
	})
	if checkOut != nil {
		return rows.AddRow(id, roomID, userID, checkIn, *checkOut, status, now, now)
	}
	return rows.AddRow(id, roomID, userID, checkIn, nil, status, now, now)
}

func roomRows(id int64, number int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "number", "created_at", "updated_at"}).
		AddRow(id, number, now, now)
}

func guestRows(id int64, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "document", "name", "email", "login", "password_hash",
		"phone", "phone_ddd", "phone_ddi", "role", "created_at", "updated_at",
	}).AddRow(id, "12345678900", name, "ana@example.com", "anamaria", "$2a$10$hash",
		"99999999", "11", "55", "G", now, now)
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func expectNoFreeBooking(mock sqlmock.Sqlmock, roomID int64) {
	mock.ExpectQuery(`SELECT id FROM bookings WHERE room_id=\? AND status=\?`).
		WithArgs(roomID, "F").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func expectConflictCounts(mock sqlmock.Sqlmock, sameCheckIn, openStays, overlaps int) {
	mock.ExpectQuery(`AND check_in=\?`).WillReturnRows(countRows(sameCheckIn))
	mock.ExpectQuery(`check_out IS NULL`).WillReturnRows(countRows(openStays))
	mock.ExpectQuery(`check_out IS NOT NULL`).WillReturnRows(countRows(overlaps))
}

func TestIsBookingPermittedFreeShortcut(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	// A single Free row permits without running the conflict queries.
	mock.ExpectQuery(`SELECT id FROM bookings WHERE room_id=\? AND status=\?`).
		WithArgs(5, "F").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	checkIn := time.Now().Add(24 * time.Hour)
	permitted, err := svc.IsBookingPermitted(checkIn, nil, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !permitted {
		t.Fatal("a freed room should always be bookable")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsBookingPermittedCheckInCollision(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	expectNoFreeBooking(mock, 5)
	expectConflictCounts(mock, 1, 0, 0)

	checkIn := time.Now().Add(24 * time.Hour)
	permitted, err := svc.IsBookingPermitted(checkIn, nil, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if permitted {
		t.Fatal("an exact check-in collision should block the booking")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsBookingPermittedOpenStayBlocks(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	expectNoFreeBooking(mock, 5)
	expectConflictCounts(mock, 0, 1, 0)

	checkIn := time.Now().Add(24 * time.Hour)
	permitted, err := svc.IsBookingPermitted(checkIn, nil, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if permitted {
		t.Fatal("an earlier open-ended stay should block the booking")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsBookingPermittedAllClear(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	expectNoFreeBooking(mock, 5)
	expectConflictCounts(mock, 0, 0, 0)

	checkIn := time.Now().Add(24 * time.Hour)
	checkOut := checkIn.Add(48 * time.Hour)
	permitted, err := svc.IsBookingPermitted(checkIn, &checkOut, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !permitted {
		t.Fatal("empty conflict queries should permit the booking")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingDefaultsToScheduled(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	checkOut := checkIn.Add(48 * time.Hour)

	mock.ExpectQuery(`FROM rooms WHERE id=\?`).WithArgs(2).WillReturnRows(roomRows(2, 101))
	mock.ExpectQuery(`FROM users WHERE document=\? AND role=\?`).
		WithArgs("12345678900", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))
	expectNoFreeBooking(mock, 2)
	expectConflictCounts(mock, 0, 0, 0)
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(7, 1))

	b, err := svc.Create(BookingCreateInput{
		RoomID:   2,
		Guest:    GuestQuery{Document: "12345678900"},
		CheckIn:  checkIn,
		CheckOut: &checkOut,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 7 || b.RoomID != 2 || b.UserID != 3 {
		t.Fatalf("unexpected booking identity: %+v", b)
	}
	if b.Status != models.StatusScheduled {
		t.Fatalf("blank status should default to SCHEDULED, got %q", b.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingFreeRoomOverridesOverlap(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)

	mock.ExpectQuery(`FROM rooms WHERE id=\?`).WithArgs(2).WillReturnRows(roomRows(2, 101))
	mock.ExpectQuery(`FROM users WHERE document=\? AND role=\?`).
		WithArgs("12345678900", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))
	mock.ExpectQuery(`SELECT id FROM bookings WHERE room_id=\? AND status=\?`).
		WithArgs(2, "F").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(8, 1))

	if _, err := svc.Create(BookingCreateInput{
		RoomID:  2,
		Guest:   GuestQuery{Document: "12345678900"},
		CheckIn: checkIn,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)

	mock.ExpectQuery(`FROM rooms WHERE id=\?`).WithArgs(2).WillReturnRows(roomRows(2, 101))
	mock.ExpectQuery(`FROM users WHERE document=\? AND role=\?`).
		WithArgs("12345678900", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))
	expectNoFreeBooking(mock, 2)
	expectConflictCounts(mock, 1, 0, 0)

	_, err := svc.Create(BookingCreateInput{
		RoomID:  2,
		Guest:   GuestQuery{Document: "12345678900"},
		CheckIn: checkIn,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected a conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsPastCheckIn(t *testing.T) {
	svc, _, done := newBookingServiceMock(t)
	defer done()

	_, err := svc.Create(BookingCreateInput{
		RoomID:  2,
		Guest:   GuestQuery{Document: "12345678900"},
		CheckIn: time.Now().Add(-24 * time.Hour),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCreateBookingRequiresGuestAttribute(t *testing.T) {
	svc, _, done := newBookingServiceMock(t)
	defer done()

	_, err := svc.Create(BookingCreateInput{
		RoomID:  2,
		CheckIn: time.Now().Add(24 * time.Hour),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	svc, _, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	checkOut := checkIn.Add(-time.Hour)
	_, err := svc.Create(BookingCreateInput{
		RoomID:   2,
		Guest:    GuestQuery{Document: "12345678900"},
		CheckIn:  checkIn,
		CheckOut: &checkOut,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCheckInMovesScheduledToCheckedIn(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "S"))
	mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.CheckIn(4, checkIn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusCheckedIn {
		t.Fatalf("got status %q, want CHECKED-IN", b.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckInRejectsEarlierDate(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "S"))

	_, err := svc.CheckIn(4, checkIn.Add(-time.Hour))
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckInRejectsNonScheduled(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "C"))

	_, err := svc.CheckIn(4, checkIn)
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCheckOutFreesAndStampsCheckOut(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "C"))
	mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	before := time.Now()
	b, err := svc.CheckOut(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusFree {
		t.Fatalf("got status %q, want FREE", b.Status)
	}
	if b.CheckOut == nil || b.CheckOut.Before(before) {
		t.Fatalf("check-out should be stamped to now, got %v", b.CheckOut)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckOutRejectsNonCheckedIn(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(-24 * time.Hour)
	checkOut := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, &checkOut, "F"))

	_, err := svc.CheckOut(4)
	if !domain.IsValidation(err) {
		t.Fatalf("a second check-out should fail, got %v", err)
	}
}

func TestCancelScheduledFreesBooking(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "S"))
	mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Cancel(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusFree {
		t.Fatalf("got status %q, want FREE", b.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelFreedBookingRejected(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "F"))

	_, err := svc.Cancel(4)
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestUpdateKeepsStatusWhenBlank(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "C"))
	// Dates unchanged: no availability re-check before the update.
	mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Update(4, BookingUpdateInput{CheckIn: checkIn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.StatusCheckedIn {
		t.Fatalf("blank status should keep CHECKED-IN, got %q", b.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateDateChangeRechecksExcludingOwnRow(t *testing.T) {
	svc, mock, done := newBookingServiceMock(t)
	defer done()

	checkIn := time.Now().Add(24 * time.Hour)
	newCheckIn := checkIn.Add(48 * time.Hour)

	mock.ExpectQuery(`FROM bookings WHERE id=\?`).WithArgs(4).
		WillReturnRows(bookingRows(4, 2, 3, checkIn, nil, "S"))
	expectNoFreeBooking(mock, 2)
	mock.ExpectQuery(`AND check_in=\? AND id<>\?`).
		WithArgs(2, newCheckIn, 4).
		WillReturnRows(countRows(1))
	mock.ExpectQuery(`check_out IS NULL`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`check_out IS NOT NULL`).WillReturnRows(countRows(0))

	_, err := svc.Update(4, BookingUpdateInput{CheckIn: newCheckIn})
	if !domain.IsConflict(err) {
		t.Fatalf("expected a conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
