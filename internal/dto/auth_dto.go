package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *UserProfile `json:"user,omitempty"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// RegisterResponse covers both backend variants: a JWT pair or a
// legacy single token.
type RegisterResponse struct {
	Access  string       `json:"access,omitempty"`
	Refresh string       `json:"refresh,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *UserProfile `json:"user,omitempty"`
}

type GoogleLoginRequest struct {
	IdToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}
