package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AssignmentMailItem struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	MassName string `json:"massName"`
	RoleName string `json:"roleName"`
}

type AssignmentNotificationMailData struct {
	FullName    string               `json:"fullName"`
	Assignments []AssignmentMailItem `json:"assignments"`
}
