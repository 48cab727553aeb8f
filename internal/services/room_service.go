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

type RoomService struct {
	RoomRepo    repositories.RoomRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func (s RoomService) GetByID(id domain.ID) (models.Room, error) {
	rm, err := s.RoomRepo.GetByID(id)
	if err == sql.ErrNoRows {
		return models.Room{}, domain.NotFoundError{Resource: "room"}
	}
	if err != nil {
		return models.Room{}, domain.InternalError{Msg: "failed to load room", Err: err}
	}
	return rm, nil
}

func (s RoomService) GetByNumber(number int) (models.Room, error) {
	rm, err := s.RoomRepo.GetByNumber(number)
	if err == sql.ErrNoRows {
		return models.Room{}, domain.NotFoundError{Resource: "room"}
	}
	if err != nil {
		return models.Room{}, domain.InternalError{Msg: "failed to load room", Err: err}
	}
	return rm, nil
}

func (s RoomService) ListAll() ([]models.Room, error) {
	rooms, err := s.RoomRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list rooms", Err: err}
	}
	return rooms, nil
}

func (s RoomService) Save(number int) (models.Room, error) {
	if err := s.checkNumber(number, 0); err != nil {
		return models.Room{}, err
	}

	now := time.Now()
	rm := models.Room{Number: number, CreatedAt: now, UpdatedAt: now}
	if err := s.RoomRepo.Insert(&rm); err != nil {
		return models.Room{}, domain.InternalError{Msg: "failed to save room", Err: err}
	}

	utils.LogEvent(s.RequestID, "room", "save", "number="+strconv.Itoa(number))
	return rm, nil
}

func (s RoomService) Update(id domain.ID, number int) (models.Room, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Room{}, err
	}
	if err := s.checkNumber(number, id); err != nil {
		return models.Room{}, err
	}

	existing.Number = number
	existing.UpdatedAt = time.Now()
	if err := s.RoomRepo.Update(existing); err != nil {
		return models.Room{}, domain.InternalError{Msg: "failed to update room", Err: err}
	}
	return existing, nil
}

// Delete removes the room and every booking that references it.
func (s RoomService) Delete(id domain.ID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.BookingRepo.DeleteByRoom(id); err != nil {
		return domain.InternalError{Msg: "failed to delete room bookings", Err: err}
	}
	if _, err := s.RoomRepo.Delete(id); err != nil {
		return domain.InternalError{Msg: "failed to delete room", Err: err}
	}
	utils.LogEvent(s.RequestID, "room", "delete", "id="+strconv.FormatInt(int64(id), 10))
	return nil
}

func (s RoomService) DeleteAll() error {
	if err := s.BookingRepo.DeleteAll(); err != nil {
		return domain.InternalError{Msg: "failed to delete bookings", Err: err}
	}
	if err := s.RoomRepo.DeleteAll(); err != nil {
		return domain.InternalError{Msg: "failed to delete rooms", Err: err}
	}
	utils.LogEvent(s.RequestID, "room", "delete_all", "")
	return nil
}

func (s RoomService) checkNumber(number int, excludeID domain.ID) error {
	if number < models.RoomNumberMin || number > models.RoomNumberMax {
		return domain.ValidationError{
			Field: "number",
			Msg:   fmt.Sprintf("must be between %d and %d", models.RoomNumberMin, models.RoomNumberMax),
		}
	}
	taken, err := s.RoomRepo.ExistsByNumber(number, excludeID)
	if err != nil {
		return domain.InternalError{Msg: "failed to check room number", Err: err}
	}
	if taken {
		return domain.ConflictError{Resource: "room", Msg: fmt.Sprintf("number %d already registered", number)}
	}
	return nil
}
