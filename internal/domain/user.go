package domain

import "time"

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	PeopleID string  `json:"peopleId,omitempty"`
	Profile  *People `json:"profile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// People is the profile record attached to a user.
type People struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	IsActive  bool     `json:"isActive"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// DisplayName returns something printable for the CLI prompt.
func (u *User) DisplayName() string {
	if u.Profile != nil && u.Profile.FirstName != "" {
		return u.Profile.FirstName + " " + u.Profile.LastName
	}
	return u.Email
}
