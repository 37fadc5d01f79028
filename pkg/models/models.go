package models

import "time"

// Client is a top-level customer record; every list, item and dropdown
// option is scoped under one client.
type Client struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Project groups clients under an owning signed-in user.
type Project struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SourcingList is a named area under a client that owns its own sourcing
// item collection.
type SourcingList struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"clientId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PettyCashDoc is the named petty cash sheet under a client.
type PettyCashDoc struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"clientId"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Fullname     string `db:"fullname" json:"fullname"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Fullname string `json:"fullname"`
	Role     string `json:"role" binding:"required"`
}
