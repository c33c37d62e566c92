package emails

// EmailServiceType sends templated transactional mail. Templates live in
// the templates/ directory and are resolved by name.
type EmailServiceType interface {
	SendEmail(toEmail string, subject string, templateName string, opts interface{}) bool
	loadTemplates(templateName string, opts interface{}) *string
}
