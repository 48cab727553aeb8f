package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/repositories"
	"hotelapi/internal/utils"
)

// createCheckInGrace tolerates clock skew between client and server when
// rejecting past check-in dates at creation.
const createCheckInGrace = time.Minute

type BookingCreateInput struct {
	RoomID     domain.ID
	RoomNumber int
	Guest      GuestQuery
	CheckIn    time.Time
	CheckOut   *time.Time
	Status     string
}

type BookingUpdateInput struct {
	CheckIn  time.Time
	CheckOut *time.Time
	Status   string
}

// BookingService is the orchestrator: it resolves the referenced room and
// guest, applies the availability predicate and commits state changes.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	RoomRepo    repositories.RoomRepository
	UserRepo    repositories.UserRepository
	RequestID   string
}

func (s BookingService) roomService() RoomService {
	return RoomService{RoomRepo: s.RoomRepo, BookingRepo: s.BookingRepo, RequestID: s.RequestID}
}

func (s BookingService) userService() UserService {
	return UserService{UserRepo: s.UserRepo, BookingRepo: s.BookingRepo, RequestID: s.RequestID}
}

func (s BookingService) GetByID(id domain.ID) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(id)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	return b, nil
}

func (s BookingService) ListAll() ([]models.Booking, error) {
	bookings, err := s.BookingRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list bookings", Err: err}
	}
	return bookings, nil
}

// IsBookingPermitted decides whether the room may be booked for the
// candidate range. Any Free-status row for the room permits immediately;
// otherwise the three conflict queries must all come back empty.
// excludeID keeps a booking's own row out of the check on update.
func (s BookingService) IsBookingPermitted(checkIn time.Time, checkOut *time.Time, roomID, excludeID domain.ID) (bool, error) {
	free, err := s.BookingRepo.HasFreeForRoom(roomID)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check freed bookings", Err: err}
	}
	if free {
		return true, nil
	}

	sameCheckIn, err := s.BookingRepo.CountByCheckInForRoom(roomID, checkIn, excludeID)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check check-in collision", Err: err}
	}
	openStays, err := s.BookingRepo.CountOpenStaysBefore(roomID, checkIn, excludeID)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check open stays", Err: err}
	}
	overlaps, err := s.BookingRepo.CountOverlapping(roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check range overlap", Err: err}
	}

	return sameCheckIn == 0 && openStays == 0 && overlaps == 0, nil
}

func (s BookingService) Create(in BookingCreateInput) (models.Booking, error) {
	if in.Guest.IsEmpty() {
		return models.Booking{}, domain.ValidationError{
			Field: "guest",
			Msg:   "at least one of document, name or phone must be supplied",
		}
	}
	if err := validateRange(in.CheckIn, in.CheckOut); err != nil {
		return models.Booking{}, err
	}
	if in.CheckIn.Before(time.Now().Add(-createCheckInGrace)) {
		return models.Booking{}, domain.ValidationError{Field: "check_in", Msg: "must be now or in the future"}
	}

	room, err := s.resolveRoom(in.RoomID, in.RoomNumber)
	if err != nil {
		return models.Booking{}, err
	}
	guest, err := s.userService().FindGuestByAttributes(in.Guest)
	if err != nil {
		return models.Booking{}, err
	}

	permitted, err := s.IsBookingPermitted(in.CheckIn, in.CheckOut, room.ID, 0)
	if err != nil {
		return models.Booking{}, err
	}
	if !permitted {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("room %d is not available from %s", room.Number, utils.FormatDateTime(in.CheckIn)),
		}
	}

	now := time.Now()
	b := models.Booking{
		RoomID:    room.ID,
		UserID:    guest.ID,
		CheckIn:   in.CheckIn,
		CheckOut:  in.CheckOut,
		Status:    models.ResolveStatus(models.StatusScheduled, in.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.BookingRepo.Insert(&b); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to save booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("id=%d room=%d user=%d", b.ID, b.RoomID, b.UserID))
	return b, nil
}

// Update re-runs the availability predicate only when the date pair actually
// changed, against the room on the stored record, excluding the booking's
// own row.
func (s BookingService) Update(id domain.ID, in BookingUpdateInput) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if err := validateRange(in.CheckIn, in.CheckOut); err != nil {
		return models.Booking{}, err
	}

	datesChanged := !in.CheckIn.Equal(existing.CheckIn) || !equalOptionalTime(in.CheckOut, existing.CheckOut)
	if datesChanged {
		permitted, err := s.IsBookingPermitted(in.CheckIn, in.CheckOut, existing.RoomID, existing.ID)
		if err != nil {
			return models.Booking{}, err
		}
		if !permitted {
			return models.Booking{}, domain.ConflictError{
				Resource: "booking",
				Msg:      fmt.Sprintf("room is not available from %s", utils.FormatDateTime(in.CheckIn)),
			}
		}
	}

	existing.CheckIn = in.CheckIn
	existing.CheckOut = in.CheckOut
	existing.Status = models.ResolveStatus(existing.Status, in.Status)
	existing.UpdatedAt = time.Now()

	if err := s.BookingRepo.Update(existing); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to update booking", Err: err}
	}
	return existing, nil
}

// Cancel frees the booking. Scheduled and Checked-in bookings may be
// cancelled; anything else is rejected.
func (s BookingService) Cancel(id domain.ID) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if !existing.Status.CanTransition(models.StatusFree) {
		return models.Booking{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("booking with status %s cannot be cancelled", existing.Status.Label()),
		}
	}

	existing.Status = models.StatusFree
	existing.UpdatedAt = time.Now()
	if err := s.BookingRepo.Update(existing); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", "id="+strconv.FormatInt(int64(id), 10))
	return existing, nil
}

// CheckIn moves a Scheduled booking to Checked-in. The requested date may
// not precede the stored check-in.
func (s BookingService) CheckIn(id domain.ID, requested time.Time) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if existing.Status != models.StatusScheduled || !existing.Status.CanTransition(models.StatusCheckedIn) {
		return models.Booking{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("check-in requires a SCHEDULED booking, current status is %s", existing.Status.Label()),
		}
	}
	if requested.Before(existing.CheckIn) {
		return models.Booking{}, domain.ValidationError{
			Field: "check_in",
			Msg:   fmt.Sprintf("requested date %s precedes the booked check-in %s", utils.FormatDateTime(requested), utils.FormatDateTime(existing.CheckIn)),
		}
	}

	existing.Status = models.StatusCheckedIn
	existing.UpdatedAt = time.Now()
	if err := s.BookingRepo.Update(existing); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to check in booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "checkin", "id="+strconv.FormatInt(int64(id), 10))
	return existing, nil
}

// CheckOut frees a Checked-in booking and stamps its check-out to now.
func (s BookingService) CheckOut(id domain.ID) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if existing.Status != models.StatusCheckedIn {
		return models.Booking{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("check-out requires a CHECKED-IN booking, current status is %s", existing.Status.Label()),
		}
	}

	now := time.Now()
	existing.Status = models.StatusFree
	existing.CheckOut = &now
	existing.UpdatedAt = now
	if err := s.BookingRepo.Update(existing); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to check out booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "checkout", "id="+strconv.FormatInt(int64(id), 10))
	return existing, nil
}

func (s BookingService) Delete(id domain.ID) error {
	ok, err := s.BookingRepo.Delete(id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete booking", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (s BookingService) DeleteAll() error {
	if err := s.BookingRepo.DeleteAll(); err != nil {
		return domain.InternalError{Msg: "failed to delete bookings", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "delete_all", "")
	return nil
}

func (s BookingService) resolveRoom(roomID domain.ID, number int) (models.Room, error) {
	if roomID > 0 {
		return s.roomService().GetByID(roomID)
	}
	if number > 0 {
		return s.roomService().GetByNumber(number)
	}
	return models.Room{}, domain.ValidationError{Field: "room", Msg: "room id or number must be supplied"}
}

func validateRange(checkIn time.Time, checkOut *time.Time) error {
	if checkIn.IsZero() {
		return domain.ValidationError{Field: "check_in", Msg: "is required"}
	}
	if checkOut != nil && checkOut.Before(checkIn) {
		return domain.ValidationError{Field: "check_out", Msg: "must not precede check-in"}
	}
	return nil
}

func equalOptionalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
