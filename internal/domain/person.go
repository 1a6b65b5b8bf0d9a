package domain

// Person is a parish minister. People are scheduling subjects, not login
// accounts; a person may or may not also have a User.
type Person struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}
