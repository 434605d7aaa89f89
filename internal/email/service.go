package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/watchhaven/internal/domain/catalog"
)

// SendFunc delivers one message; it matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
	send SendFunc
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return NewServiceWithSender(host, port, from, smtp.SendMail)
}

func NewServiceWithSender(host, port, from string, send SendFunc) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
		send: send,
	}
}

// SendNewArrival tells a subscriber about a freshly added timepiece
func (s *Service) SendNewArrival(to string, p catalog.Product) error {
	subject := fmt.Sprintf("New arrival at WatchHaven: %s by %s", p.Name, p.Brand)
	body := BuildNewArrivalBody(p)
	return s.deliver(to, subject, body)
}

func (s *Service) deliver(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return s.send(addr, nil, s.from, []string{to}, []byte(msg))
}
