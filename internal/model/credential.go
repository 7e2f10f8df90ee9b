package model

// CredentialEntry maps a staff login to its school identity and the data
// file backing that school's records. The server only ever reads these;
// entries are provisioned with the create-user CLI.
type CredentialEntry struct {
	Username     string `json:"-"`
	PasswordHash string `json:"password_hash"`
	SchoolName   string `json:"school_name"`
	SchoolCode   string `json:"school_code"`
	DataFile     string `json:"file"`
}

// LoginRequest is the payload for staff authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}
