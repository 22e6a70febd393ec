package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role - роль пользователя в системе
type Role string

const (
	RoleRegular Role = "Regular"
	RoleAdmin   Role = "Admin"
)

type User struct {
	ID           int
	Username     string
	Email        string
	Password     string
	Role         Role
	RefreshToken string
}

// Identity - тройка (username, email, role), которую несут оба токена
type Identity struct {
	Username string
	Email    string
	Role     Role
}

// Complete сообщает, заполнены ли все поля идентичности
func (i Identity) Complete() bool {
	return i.Username != "" && i.Email != "" && i.Role != ""
}

func (u *User) Identity() Identity {
	return Identity{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

type UserClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// DeletedUser - итог удаления пользователя администратором
type DeletedUser struct {
	DeletedTransactions int64
	DeletedFromGroup    bool
}
