package email

// EmailRequest is a single outgoing message
type EmailRequest struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}
