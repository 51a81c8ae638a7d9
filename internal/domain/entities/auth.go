package entities

// SignUpInput is the registration form
type SignUpInput struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	FullName        string   `json:"full_name"`
	Role            UserRole `json:"role"`
	Company         string   `json:"company"`
	AcceptTerms     bool     `json:"accept_terms"`
}

// SignInInput is the login form
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordInput requests a password recovery email
type ResetPasswordInput struct {
	Email string `json:"email"`
}

// NewPasswordInput sets a new password for the signed in user
type NewPasswordInput struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AuthSession is the token bundle issued by the identity provider
type AuthSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	User         *User  `json:"user,omitempty"`
}
