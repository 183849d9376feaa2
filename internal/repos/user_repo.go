package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, username, name, password_hash, role, is_blocked`

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(username)=LOWER(?)`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY username`)
	return out, err
}

func (r *UserRepo) Insert(u domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id, username, name, password_hash, role, is_blocked)
		VALUES(?,?,?,?,?,?)`,
		u.ID, u.Username, u.Name, u.Hash, u.Role, u.IsBlocked)
	return err
}

func (r *UserRepo) Update(u domain.User) error {
	_, err := r.DB.Exec(`
		UPDATE users SET name=?, role=?, is_blocked=? WHERE id=?`,
		u.Name, u.Role, u.IsBlocked, u.ID)
	return err
}

func (r *UserRepo) SetBlocked(id string, blocked bool) error {
	_, err := r.DB.Exec(`UPDATE users SET is_blocked=? WHERE id=?`, blocked, id)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.username,u.name,u.password_hash,u.role,u.is_blocked
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
