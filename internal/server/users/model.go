package users

// User is a credential record. The username is the immutable identifier;
// the password is kept only as a bcrypt digest.
type User struct {
	Username     string
	PasswordHash string
}
