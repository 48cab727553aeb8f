package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/repositories"
	"hotelapi/internal/utils"
)

// GuestQuery carries the optional identifying attributes used to resolve a
// user. Priority is document, then name, then the full phone triple.
type GuestQuery struct {
	Document string
	Name     string
	Phone    string
	PhoneDDD string
	PhoneDDI string
}

func (q GuestQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Document) == "" &&
		strings.TrimSpace(q.Name) == "" &&
		strings.TrimSpace(q.Phone) == "" &&
		strings.TrimSpace(q.PhoneDDD) == "" &&
		strings.TrimSpace(q.PhoneDDI) == ""
}

// hasCompletePhone: the phone lookup needs ddi, ddd and number together.
func (q GuestQuery) hasCompletePhone() bool {
	return strings.TrimSpace(q.PhoneDDI) != "" &&
		strings.TrimSpace(q.PhoneDDD) != "" &&
		strings.TrimSpace(q.Phone) != ""
}

type UserInput struct {
	Document string
	Name     string
	Email    string
	Login    string
	Password string
	Phone    string
	PhoneDDD string
	PhoneDDI string
	Role     string
}

type UserService struct {
	UserRepo    repositories.UserRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func (s UserService) GetByID(id domain.ID) (models.User, error) {
	u, err := s.UserRepo.GetByID(id)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return u, nil
}

func (s UserService) ListAll() ([]models.User, error) {
	users, err := s.UserRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list users", Err: err}
	}
	return users, nil
}

func (s UserService) Save(in UserInput) (models.User, error) {
	role, ok := models.ParseUserRole(in.Role)
	if !ok {
		return models.User{}, domain.ValidationError{Field: "role", Msg: "must be one of A, G or U"}
	}

	taken, err := s.UserRepo.ExistsByDocumentOrLogin(strings.TrimSpace(in.Document), strings.TrimSpace(in.Login), 0)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to check user uniqueness", Err: err}
	}
	if taken {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "document or login already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	now := time.Now()
	u := models.User{
		Document:     strings.TrimSpace(in.Document),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Login:        strings.TrimSpace(in.Login),
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		PhoneDDD:     strings.TrimSpace(in.PhoneDDD),
		PhoneDDI:     strings.TrimSpace(in.PhoneDDI),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.UserRepo.Insert(&u); err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to save user", Err: err}
	}

	utils.LogEvent(s.RequestID, "user", "save", "id="+strconv.FormatInt(int64(u.ID), 10))
	return u, nil
}

// Update rewrites the account attributes; password and bookings are
// preserved untouched.
func (s UserService) Update(id domain.ID, in UserInput) (models.User, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.User{}, err
	}

	role, ok := models.ParseUserRole(in.Role)
	if !ok {
		return models.User{}, domain.ValidationError{Field: "role", Msg: "must be one of A, G or U"}
	}

	taken, err := s.UserRepo.ExistsByDocumentOrLogin(strings.TrimSpace(in.Document), strings.TrimSpace(in.Login), id)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to check user uniqueness", Err: err}
	}
	if taken {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "document or login already registered"}
	}

	existing.Document = strings.TrimSpace(in.Document)
	existing.Name = strings.TrimSpace(in.Name)
	existing.Email = strings.TrimSpace(in.Email)
	existing.Login = strings.TrimSpace(in.Login)
	existing.Phone = strings.TrimSpace(in.Phone)
	existing.PhoneDDD = strings.TrimSpace(in.PhoneDDD)
	existing.PhoneDDI = strings.TrimSpace(in.PhoneDDI)
	existing.Role = role
	existing.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(existing); err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to update user", Err: err}
	}
	return existing, nil
}

func (s UserService) Delete(id domain.ID) error {
	ok, err := s.UserRepo.Delete(id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete user", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (s UserService) DeleteAll() error {
	if err := s.UserRepo.DeleteAll(); err != nil {
		return domain.InternalError{Msg: "failed to delete users", Err: err}
	}
	utils.LogEvent(s.RequestID, "user", "delete_all", "")
	return nil
}

// FindByAttributes dispatches to the lookup matching the first present
// identifying attribute, scoped by role. An empty query yields not-found
// rather than an error; callers validate presence beforehand when they need
// a hard failure.
func (s UserService) FindByAttributes(q GuestQuery, role models.UserRole) ([]models.User, error) {
	attr, ok := FirstAttributePresent(
		Attribute{Name: "document", Value: q.Document},
		Attribute{Name: "name", Value: q.Name},
	)
	if ok {
		var (
			users []models.User
			err   error
		)
		if attr == "DOCUMENT" {
			users, err = s.UserRepo.ListByDocumentAndRole(strings.TrimSpace(q.Document), role)
		} else {
			users, err = s.UserRepo.ListByNameAndRole(q.Name, role)
		}
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to search users", Err: err}
		}
		return users, nil
	}

	if !q.hasCompletePhone() {
		return []models.User{}, nil
	}
	users, err := s.UserRepo.ListByPhoneAndRole(
		strings.TrimSpace(q.PhoneDDI), strings.TrimSpace(q.PhoneDDD), strings.TrimSpace(q.Phone), role)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to search users", Err: err}
	}
	return users, nil
}

// FindGuestByAttributes resolves exactly one guest for the booking
// orchestrator.
func (s UserService) FindGuestByAttributes(q GuestQuery) (models.User, error) {
	users, err := s.FindByAttributes(q, models.RoleGuest)
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, domain.NotFoundError{Resource: "guest"}
	}
	return users[0], nil
}

// FindGuestsStaying returns guests with a booking currently in effect: a
// Checked-in record whose check-out is unset or not yet past.
func (s UserService) FindGuestsStaying(q GuestQuery) ([]models.User, error) {
	if err := s.requireIdentifyingAttribute(q); err != nil {
		return nil, err
	}
	return s.filterGuestsByBooking(q, func(b models.Booking, now time.Time) bool {
		if b.Status != models.StatusCheckedIn {
			return false
		}
		return b.CheckOut == nil || !b.CheckOut.Before(now)
	})
}

// FindGuestsWithUpcomingBooking returns guests holding a Scheduled booking
// whose check-in is still in the future.
func (s UserService) FindGuestsWithUpcomingBooking(q GuestQuery) ([]models.User, error) {
	if err := s.requireIdentifyingAttribute(q); err != nil {
		return nil, err
	}
	return s.filterGuestsByBooking(q, func(b models.Booking, now time.Time) bool {
		if b.Status != models.StatusScheduled || !b.CheckIn.After(now) {
			return false
		}
		return b.CheckOut == nil || !b.CheckOut.Before(now)
	})
}

func (s UserService) requireIdentifyingAttribute(q GuestQuery) error {
	if strings.TrimSpace(q.Document) == "" && strings.TrimSpace(q.Name) == "" && !q.hasCompletePhone() {
		return domain.ValidationError{
			Field: "guest",
			Msg:   "supply a document, a name, or the full phone ddi/ddd/number triple",
		}
	}
	return nil
}

func (s UserService) filterGuestsByBooking(q GuestQuery, keep func(models.Booking, time.Time) bool) ([]models.User, error) {
	users, err := s.FindByAttributes(q, models.RoleGuest)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := []models.User{}
	for _, u := range users {
		bookings, err := s.BookingRepo.ListByUser(u.ID)
		if err != nil {
			return nil, domain.InternalError{Msg: fmt.Sprintf("failed to load bookings for user %d", u.ID), Err: err}
		}
		for _, b := range bookings {
			if keep(b, now) {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}
