package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ResetPasswordMailData struct {
	Username   string `json:"username"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type SubmissionReceivedMailData struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Student  string `json:"student"`
}
