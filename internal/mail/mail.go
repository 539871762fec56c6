// Package mail sends report emails over SMTP with STARTTLS.
package mail

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
)

type Config struct {
	Host string
	Port string
	User string
	Pass string
}

type Client struct {
	cfg Config
}

// FromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASS. All four must
// be set for mail delivery to be available.
func FromEnv() (Config, error) {
	cfg := Config{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
	}
	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Pass == "" {
		return Config{}, fmt.Errorf("smtp is not configured")
	}
	return cfg, nil
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Send delivers a plain-text message with an optional PDF attachment. The
// sender address is the authenticated SMTP user.
func (c *Client) Send(to, subject, body string, attachment []byte, filename string) error {
	addr := net.JoinHostPort(c.cfg.Host, c.cfg.Port)
	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %v", err)
	}
	defer conn.Close()

	if err := conn.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
		return fmt.Errorf("smtp starttls: %v", err)
	}
	auth := smtp.PlainAuth("", c.cfg.User, c.cfg.Pass, c.cfg.Host)
	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %v", err)
	}
	if err := conn.Mail(c.cfg.User); err != nil {
		return fmt.Errorf("smtp mail: %v", err)
	}
	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %v", err)
	}
	wc, err := conn.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %v", err)
	}
	if _, err := wc.Write(buildMessage(c.cfg.User, to, subject, body, attachment, filename)); err != nil {
		wc.Close()
		return fmt.Errorf("smtp write: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %v", err)
	}
	return conn.Quit()
}

func buildMessage(from, to, subject, body string, attachment []byte, filename string) []byte {
	var msg bytes.Buffer
	mw := multipart.NewWriter(&msg)

	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")

	text, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	text.Write([]byte(body))

	if len(attachment) > 0 {
		part, _ := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
		})
		enc := base64.StdEncoding.EncodeToString(attachment)
		// 76-character lines per RFC 2045.
		for len(enc) > 76 {
			fmt.Fprintf(part, "%s\r\n", enc[:76])
			enc = enc[76:]
		}
		fmt.Fprintf(part, "%s\r\n", enc)
	}
	mw.Close()
	return msg.Bytes()
}
