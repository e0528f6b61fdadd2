package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"cadastro-social/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendStatusUpdateEmail(ctx context.Context, toEmail, fullName, statusLabel string, note *string) error
	SendNewMessageEmail(ctx context.Context, toEmail, fullName string) error
	SendRoleRequestReviewedEmail(ctx context.Context, toEmail, fullName, roleLabel string, approved bool) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	return &service{
		client:       resend.NewClient(cfg.ResendAPIKey),
		config:       cfg,
		templatePath: "internal/service/templates/email",
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Cadastro Social <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Bem-vindo ao Cadastro Social",
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Bem-vindo ao Cadastro Social!", "welcome.html", data)
}

func (s *service) SendStatusUpdateEmail(ctx context.Context, toEmail, fullName, statusLabel string, note *string) error {
	noteText := ""
	if note != nil {
		noteText = *note
	}
	data := struct {
		Title  string
		Name   string
		Status string
		Note   string
		Link   string
	}{
		Title:  "Atualização do seu cadastro",
		Name:   fullName,
		Status: statusLabel,
		Note:   noteText,
		Link:   fmt.Sprintf("https://%s/meus-dados", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Seu cadastro foi atualizado: %s", statusLabel), "status_update.html", data)
}

func (s *service) SendNewMessageEmail(ctx context.Context, toEmail, fullName string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Nova mensagem no seu cadastro",
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/meus-dados", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Você recebeu uma nova mensagem", "new_message.html", data)
}

func (s *service) SendRoleRequestReviewedEmail(ctx context.Context, toEmail, fullName, roleLabel string, approved bool) error {
	result := "rejeitada"
	if approved {
		result = "aprovada"
	}
	data := struct {
		Title  string
		Name   string
		Role   string
		Result string
		Link   string
	}{
		Title:  "Sua solicitação de acesso foi revisada",
		Name:   fullName,
		Role:   roleLabel,
		Result: result,
		Link:   fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Solicitação de acesso %s", result), "role_request.html", data)
}
