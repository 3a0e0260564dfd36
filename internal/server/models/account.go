package models

// Account is a registered user. PasswordHash holds a bcrypt hash and is
// stored under the "password" key, the layout existing users.json files use.
type Account struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
