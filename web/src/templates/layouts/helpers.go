package layouts

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title, company string) string {
	if company == "" {
		company = "Interpersonal Psychiatry"
	}
	if title != "" {
		return title + " - " + company
	}
	return company
}
