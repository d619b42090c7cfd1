package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	UserId        uint   `json:"userid"`
	Username      string `json:"username"`
	AccessToken   string `json:"access_token"`
	RememberToken string `json:"remember_token,omitempty"`
}

type SystemLogResponse struct {
	Id            uint    `json:"logid"`
	Timestamp     string  `json:"timestamp"`
	Message       string  `json:"message"`
	SessionId     *string `json:"session_id"`
	RequestMethod *string `json:"request_method"`
	RequestURI    *string `json:"request_uri"`
	UserId        *uint   `json:"userid"`
}
