package response

import "portfolio-services/internal/usecase/commands"

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token: r.Token,
		Email: r.Email,
	}
}
