package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/repositories"
)

func newUserServiceMock(t *testing.T) (UserService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := UserService{
		UserRepo:    repositories.UserRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		RequestID:   "test",
	}
	return svc, mock, func() { db.Close() }
}

func TestFindByAttributesDocumentBeatsName(t *testing.T) {
	svc, mock, done := newUserServiceMock(t)
	defer done()

	// Both attributes present: only the document lookup may run.
	mock.ExpectQuery(`FROM users WHERE document=\? AND role=\?`).
		WithArgs("12345678900", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))

	users, err := svc.FindByAttributes(GuestQuery{
		Document: "12345678900",
		Name:     "Somebody Else",
	}, models.RoleGuest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != 3 {
		t.Fatalf("unexpected result: %+v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByAttributesIncompletePhoneYieldsNothing(t *testing.T) {
	svc, _, done := newUserServiceMock(t)
	defer done()

	// Phone without ddd/ddi never reaches the database.
	users, err := svc.FindByAttributes(GuestQuery{Phone: "99999999"}, models.RoleGuest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %+v", users)
	}
}

func TestFindGuestByAttributesNotFound(t *testing.T) {
	svc, _, done := newUserServiceMock(t)
	defer done()

	_, err := svc.FindGuestByAttributes(GuestQuery{Phone: "99999999"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestFindByAttributesPhoneTriple(t *testing.T) {
	svc, mock, done := newUserServiceMock(t)
	defer done()

	mock.ExpectQuery(`WHERE phone_ddi=\? AND phone_ddd=\? AND phone=\? AND role=\?`).
		WithArgs("55", "11", "99999999", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))

	users, err := svc.FindByAttributes(GuestQuery{
		Phone:    "99999999",
		PhoneDDD: "11",
		PhoneDDI: "55",
	}, models.RoleGuest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("unexpected result: %+v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindGuestsStayingRequiresAttribute(t *testing.T) {
	svc, _, done := newUserServiceMock(t)
	defer done()

	_, err := svc.FindGuestsStaying(GuestQuery{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestFindGuestsStayingKeepsCheckedInOnly(t *testing.T) {
	svc, mock, done := newUserServiceMock(t)
	defer done()

	mock.ExpectQuery(`FROM users WHERE document=\? AND role=\?`).
		WithArgs("12345678900", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "room_id", "user_id", "check_in", "check_out", "status", "created_at", "updated_at",
	}).
		AddRow(10, 2, 3, now.Add(72*time.Hour), nil, "S", now, now).
		AddRow(11, 2, 3, now.Add(-24*time.Hour), nil, "C", now, now)
	mock.ExpectQuery(`FROM bookings WHERE user_id=\?`).WithArgs(3).WillReturnRows(rows)

	users, err := svc.FindGuestsStaying(GuestQuery{Document: "12345678900"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != 3 {
		t.Fatalf("unexpected result: %+v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindGuestsUpcomingExcludesPastCheckIn(t *testing.T) {
	svc, mock, done := newUserServiceMock(t)
	defer done()

	mock.ExpectQuery(`FROM users WHERE document=\? AND role=\?`).
		WithArgs("12345678900", "G").
		WillReturnRows(guestRows(3, "Ana Maria"))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "room_id", "user_id", "check_in", "check_out", "status", "created_at", "updated_at",
	}).
		AddRow(10, 2, 3, now.Add(-72*time.Hour), nil, "S", now, now).
		AddRow(11, 2, 3, now.Add(-24*time.Hour), nil, "C", now, now)
	mock.ExpectQuery(`FROM bookings WHERE user_id=\?`).WithArgs(3).WillReturnRows(rows)

	users, err := svc.FindGuestsWithUpcomingBooking(GuestQuery{Document: "12345678900"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no upcoming guests, got %+v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveRejectsUnknownRole(t *testing.T) {
	svc, _, done := newUserServiceMock(t)
	defer done()

	_, err := svc.Save(UserInput{Login: "anamaria", Password: "secret", Role: "X"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestSaveDuplicateDocumentOrLogin(t *testing.T) {
	svc, mock, done := newUserServiceMock(t)
	defer done()

	mock.ExpectQuery(`\(document=\? OR login=\?\)`).
		WithArgs("12345678900", "anamaria").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	_, err := svc.Save(UserInput{
		Document: "12345678900",
		Name:     "Ana Maria",
		Login:    "anamaria",
		Password: "secret",
		Role:     "G",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected a conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
