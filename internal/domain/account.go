package domain

import "time"

// Account represents a registered user account. Password holds the hash.
type Account struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

// AddAccountInput carries the fields needed to create an account.
type AddAccountInput struct {
	Name     string
	Email    string
	Password string
}
