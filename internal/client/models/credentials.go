package models

// Credentials is the sign-in payload.
type Credentials struct {
	Email    string `json:"credentials"`
	Password string `json:"secret"`
}

// Registration is the sign-up payload.
type Registration struct {
	Email           string `json:"credentials"`
	Password        string `json:"secret"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SignInResponse carries the token issued by a successful sign-in.
type SignInResponse struct {
	Token string `json:"token"`
}
