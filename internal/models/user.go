package models

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Login        string `json:"login" db:"login"`
	PasswordHash string `json:"-" db:"password"`
}

// PublicUser is the outward view of a User; it never carries the hash.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Login, Email: u.Email}
}
