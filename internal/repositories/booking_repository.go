package repositories

import (
	"database/sql"
	"time"

	intconfig "hotelapi/internal/config"
	intdb "hotelapi/internal/db"
	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
)

const bookingColumns = "id, room_id, user_id, check_in, check_out, status, created_at, updated_at"

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type bookingScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingScanner) (models.Booking, error) {
	var (
		b        models.Booking
		checkOut sql.NullTime
		status   string
	)
	err := row.Scan(&b.ID, &b.RoomID, &b.UserID, &b.CheckIn, &checkOut, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Booking{}, err
	}
	b.CheckOut = intdb.TimePtr(checkOut)
	b.Status = models.BookingStatus(status)
	return b, nil
}

func (r BookingRepository) GetByID(id domain.ID) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=?`, id)
	return scanBooking(row)
}

func (r BookingRepository) ListAll() ([]models.Booking, error) {
	rows, err := r.db().Query(`SELECT ` + bookingColumns + ` FROM bookings ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r BookingRepository) ListByUser(userID domain.ID) ([]models.Booking, error) {
	rows, err := r.db().Query(`SELECT `+bookingColumns+` FROM bookings WHERE user_id=? ORDER BY check_in ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) Insert(b *models.Booking) error {
	res, err := r.db().Exec(`
		INSERT INTO bookings (room_id, user_id, check_in, check_out, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.RoomID, b.UserID, b.CheckIn, intdb.NullTime(b.CheckOut), string(b.Status), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = domain.ID(id)
	return nil
}

func (r BookingRepository) Update(b models.Booking) error {
	_, err := r.db().Exec(`
		UPDATE bookings SET check_in=?, check_out=?, status=?, updated_at=? WHERE id=?`,
		b.CheckIn, intdb.NullTime(b.CheckOut), string(b.Status), b.UpdatedAt, b.ID)
	return err
}

// Delete reports whether a row was actually removed.
func (r BookingRepository) Delete(id domain.ID) (bool, error) {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r BookingRepository) DeleteAll() error {
	_, err := r.db().Exec(`DELETE FROM bookings`)
	return err
}

func (r BookingRepository) DeleteByRoom(roomID domain.ID) error {
	_, err := r.db().Exec(`DELETE FROM bookings WHERE room_id=?`, roomID)
	return err
}

// HasFreeForRoom reports whether any Free-status booking row exists for the
// room. Its own dates are irrelevant: a freed room is always re-bookable.
func (r BookingRepository) HasFreeForRoom(roomID domain.ID) (bool, error) {
	var id domain.ID
	err := r.db().QueryRow(`SELECT id FROM bookings WHERE room_id=? AND status=? LIMIT 1`,
		roomID, string(models.StatusFree)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByCheckInForRoom finds bookings whose check-in collides exactly with
// the candidate instant. A zero-length overlap is still a conflict.
func (r BookingRepository) CountByCheckInForRoom(roomID domain.ID, checkIn time.Time, excludeID domain.ID) (int, error) {
	q := `SELECT COUNT(*) FROM bookings WHERE room_id=? AND check_in=?`
	args := []any{roomID, checkIn}
	if excludeID > 0 {
		q += ` AND id<>?`
		args = append(args, excludeID)
	}
	var n int
	err := r.db().QueryRow(q, args...).Scan(&n)
	return n, err
}

// CountOpenStaysBefore finds open-ended bookings (check-out NULL) started
// strictly before the candidate check-in; such a stay blocks everything
// after it starts.
func (r BookingRepository) CountOpenStaysBefore(roomID domain.ID, checkIn time.Time, excludeID domain.ID) (int, error) {
	q := `SELECT COUNT(*) FROM bookings WHERE room_id=? AND check_in<? AND check_out IS NULL`
	args := []any{roomID, checkIn}
	if excludeID > 0 {
		q += ` AND id<>?`
		args = append(args, excludeID)
	}
	var n int
	err := r.db().QueryRow(q, args...).Scan(&n)
	return n, err
}

// CountOverlapping finds bookings whose closed interval crosses the
// candidate range. A nil candidate check-out is an open interval reaching
// to infinity, so only the existing check-out bound remains.
func (r BookingRepository) CountOverlapping(roomID domain.ID, checkIn time.Time, checkOut *time.Time, excludeID domain.ID) (int, error) {
	var (
		q    string
		args []any
	)
	if checkOut == nil {
		q = `SELECT COUNT(*) FROM bookings WHERE room_id=? AND check_out IS NOT NULL AND check_out>=?`
		args = []any{roomID, checkIn}
	} else {
		q = `SELECT COUNT(*) FROM bookings WHERE room_id=? AND check_in<? AND check_out IS NOT NULL AND check_out>=?`
		args = []any{roomID, *checkOut, checkIn}
	}
	if excludeID > 0 {
		q += ` AND id<>?`
		args = append(args, excludeID)
	}
	var n int
	err := r.db().QueryRow(q, args...).Scan(&n)
	return n, err
}
