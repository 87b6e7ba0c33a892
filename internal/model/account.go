package model

// Account is a registered user record. PasswordHash never leaves the
// service layer; boundary responses carry a Profile instead.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	DateOfBirth  string `json:"date_of_birth"`
	Verified     bool   `json:"verified"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}

// Profile is the sanitized view of an Account returned from sign-in.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Verified    bool   `json:"verified"`
	Ctime       int64  `json:"ctime"`
}

func (a *Account) Profile() *Profile {
	return &Profile{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		DateOfBirth: a.DateOfBirth,
		Verified:    a.Verified,
		Ctime:       a.Ctime,
	}
}
