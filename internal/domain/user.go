package domain

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

// CanProcessOrders reports whether the role may drive staff-side
// ledger transitions (request payment, dispatch, cancel).
func (r Role) CanProcessOrders() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	Name      string `db:"name"`
	Hash      string `db:"password_hash"`
	Role      Role   `db:"role"`
	IsBlocked bool   `db:"is_blocked"`
}
