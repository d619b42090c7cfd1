package entity

type User struct {
	Id            uint
	Username      string
	PasswordHash  string
	RememberToken *string
}
