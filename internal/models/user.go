package models

import "time"

// Common team roles. Role is free-form; these are the ones offered at signup.
const (
	RoleManager   = "Manager"
	RoleDeveloper = "Developer"
	RoleDesigner  = "Designer"
	RoleQA        = "QA"
)

// User is a registered team member. Users are never updated after signup.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	JoinedDate   time.Time `json:"joinedDate"`
}
