package repositories

import (
	"database/sql"

	intconfig "hotelapi/internal/config"
	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/utils"
)

const userColumns = "id, document, name, email, login, password_hash, phone, phone_ddd, phone_ddi, role, created_at, updated_at"

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanUser(row bookingScanner) (models.User, error) {
	var (
		u    models.User
		role string
	)
	err := row.Scan(&u.ID, &u.Document, &u.Name, &u.Email, &u.Login, &u.PasswordHash,
		&u.Phone, &u.PhoneDDD, &u.PhoneDDI, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	u.Role = models.UserRole(role)
	return u, nil
}

func (r UserRepository) GetByID(id domain.ID) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByLogin(login string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE login=?`, login)
	return scanUser(row)
}

func (r UserRepository) ListAll() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT ` + userColumns + ` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]models.User, error) {
	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) ListByDocumentAndRole(document string, role models.UserRole) ([]models.User, error) {
	rows, err := r.db().Query(`SELECT `+userColumns+` FROM users WHERE document=? AND role=?`,
		document, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListByNameAndRole matches names case-insensitively and ignoring spaces,
// so "AnaMaria" finds "Ana Maria".
func (r UserRepository) ListByNameAndRole(name string, role models.UserRole) ([]models.User, error) {
	rows, err := r.db().Query(`SELECT `+userColumns+` FROM users
		WHERE LOWER(REPLACE(name, ' ', ''))=? AND role=?`,
		utils.CompactLower(name), string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r UserRepository) ListByPhoneAndRole(ddi, ddd, phone string, role models.UserRole) ([]models.User, error) {
	rows, err := r.db().Query(`SELECT `+userColumns+` FROM users
		WHERE phone_ddi=? AND phone_ddd=? AND phone=? AND role=?`,
		ddi, ddd, phone, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r UserRepository) ExistsByDocumentOrLogin(document, login string, excludeID domain.ID) (bool, error) {
	q := `SELECT id FROM users WHERE (document=? OR login=?)`
	args := []any{document, login}
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

func (r UserRepository) Insert(u *models.User) error {
	res, err := r.db().Exec(`
		INSERT INTO users (document, name, email, login, password_hash, phone, phone_ddd, phone_ddi, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Document, u.Name, u.Email, u.Login, u.PasswordHash,
		u.Phone, u.PhoneDDD, u.PhoneDDI, string(u.Role), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = domain.ID(id)
	return nil
}

// Update rewrites everything except the password hash; password changes go
// through a dedicated flow, and updates must never wipe the stored hash.
func (r UserRepository) Update(u models.User) error {
	_, err := r.db().Exec(`
		UPDATE users SET document=?, name=?, email=?, login=?, phone=?, phone_ddd=?, phone_ddi=?, role=?, updated_at=?
		WHERE id=?`,
		u.Document, u.Name, u.Email, u.Login,
		u.Phone, u.PhoneDDD, u.PhoneDDI, string(u.Role), u.UpdatedAt, u.ID)
	return err
}

func (r UserRepository) Delete(id domain.ID) (bool, error) {
	res, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r UserRepository) DeleteAll() error {
	_, err := r.db().Exec(`DELETE FROM users`)
	return err
}
