package detect

// sensitiveKeywords is the fixed taxonomy used by the column-name heuristic.
// Categories are ordered: the first category with a matching keyword wins
// and is the one reported for the column.
var sensitiveKeywords = []struct {
	category string
	keywords []string
}{
	{"name", []string{"name", "fullname", "full_name", "first_name", "last_name",
		"firstname", "lastname", "username", "user_name"}},
	{"email", []string{"email", "e-mail", "mail", "email_address"}},
	{"phone", []string{"phone", "mobile", "telephone", "cell", "contact_number"}},
	{"id", []string{"ssn", "social_security", "passport", "license", "national_id",
		"nric", "ic", "id_number", "employee_id", "customer_id", "user_id"}},
	{"address", []string{"address", "street", "location", "residence", "postal"}},
	{"financial", []string{"account", "credit_card", "card_number", "bank", "iban"}},
}
