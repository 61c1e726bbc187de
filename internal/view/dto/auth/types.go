package auth

// LoginData is the view model for the login page.
type LoginData struct {
	UserName  string
	Error     string
	CSRFToken string
}
