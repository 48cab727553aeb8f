package repositories

import (
	"database/sql"

	intconfig "hotelapi/internal/config"
	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
)

const roomColumns = "id, number, created_at, updated_at"

type RoomRepository struct {
	DB *sql.DB
}

func (r RoomRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanRoom(row bookingScanner) (models.Room, error) {
	var rm models.Room
	err := row.Scan(&rm.ID, &rm.Number, &rm.CreatedAt, &rm.UpdatedAt)
	return rm, err
}

func (r RoomRepository) GetByID(id domain.ID) (models.Room, error) {
	row := r.db().QueryRow(`SELECT `+roomColumns+` FROM rooms WHERE id=?`, id)
	return scanRoom(row)
}

func (r RoomRepository) GetByNumber(number int) (models.Room, error) {
	row := r.db().QueryRow(`SELECT `+roomColumns+` FROM rooms WHERE number=?`, number)
	return scanRoom(row)
}

func (r RoomRepository) ListAll() ([]models.Room, error) {
	rows, err := r.db().Query(`SELECT ` + roomColumns + ` FROM rooms ORDER BY number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r RoomRepository) ExistsByNumber(number int, excludeID domain.ID) (bool, error) {
	q := `SELECT id FROM rooms WHERE number=?`
	args := []any{number}
	if excludeID > 0 {
		q += ` AND id<>?`
		args = append(args, excludeID)
	}
	var id domain.ID
	err := r.db().QueryRow(q+` LIMIT 1`, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r RoomRepository) Insert(rm *models.Room) error {
	res, err := r.db().Exec(`INSERT INTO rooms (number, created_at, updated_at) VALUES (?, ?, ?)`,
		rm.Number, rm.CreatedAt, rm.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = domain.ID(id)
	return nil
}

func (r RoomRepository) Update(rm models.Room) error {
	_, err := r.db().Exec(`UPDATE rooms SET number=?, updated_at=? WHERE id=?`,
		rm.Number, rm.UpdatedAt, rm.ID)
	return err
}

func (r RoomRepository) Delete(id domain.ID) (bool, error) {
	res, err := r.db().Exec(`DELETE FROM rooms WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r RoomRepository) DeleteAll() error {
	_, err := r.db().Exec(`DELETE FROM rooms`)
	return err
}
