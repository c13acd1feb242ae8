package entity

import (
	"time"
)

// User is a directory entry. Password holds a bcrypt hash and is only
// populated on records read from the directory; session and API copies
// are produced with Public.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password,omitempty"`
	Matric     string    `json:"matric,omitempty"`
	Faculty    string    `json:"faculty,omitempty"`
	Department string    `json:"department,omitempty"`
	Year       string    `json:"year,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	ProfilePic string    `json:"profile_pic,omitempty"`
	IsOnline   bool      `json:"is_online"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public returns a copy of the user without the credential.
func (u User) Public() User {
	u.Password = ""
	return u
}

// MatricYear returns the two-character cohort prefix of the matric number.
func (u User) MatricYear() string {
	return matricPrefix(u.Matric, 2)
}

// MatricDepartment returns the four-character department prefix of the matric number.
func (u User) MatricDepartment() string {
	return matricPrefix(u.Matric, 4)
}

// YearFromMatric derives the entry year ("20" + first two characters).
func YearFromMatric(matric string) string {
	p := matricPrefix(matric, 2)
	if p == "" {
		return ""
	}
	return "20" + p
}

func matricPrefix(matric string, n int) string {
	r := []rune(matric)
	if len(r) < n {
		return string(r)
	}
	return string(r[:n])
}

// Session is the authenticated identity for one signed-in user.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
