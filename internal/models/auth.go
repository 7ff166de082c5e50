package models

// TokenRequest is the payload of POST /auth/token. The identity provider has
// already verified the email on the client side; the server mints its own JWT
// and upserts the user on first sight.
type TokenRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// AdminLoginRequest is the payload of POST /auth/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a signed JWT back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}
