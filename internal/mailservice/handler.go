package mailservice

// NewMailService wires a mailer that delivers contact-page messages to the
// site owner. Delivery is synchronous within the request.
func NewMailService(host, username, password, sender, recipient string, port int) *MailService {
	return &MailService{
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		recipient: recipient,
	}
}

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// SendContactMessage renders the contact template and sends it to the site
// owner. The visitor's address goes into the body so the owner can reply.
func (s *MailService) SendContactMessage(msg ContactMessage) error {
	return s.m.send(s.recipient, msg, "contact_message.html")
}
