package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDealer   UserRole = "dealer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}
