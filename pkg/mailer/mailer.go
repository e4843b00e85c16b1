package mailer

import (
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/gilandre/senator-dashboard-sub005/config"
)

// Mailer SMTP 邮件发送封装
// 用于同步任务的异常汇总通知；未配置 SMTP 时创建返回 nil，调用方按 nil 降级
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     []string
	logger *zap.Logger
}

// NewMailer 根据配置创建 Mailer；SMTP 未配置时返回 nil
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	if !cfg.Enabled() {
		return nil
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     strings.Split(cfg.To, ","),
		logger: logger,
	}
}

// Send 发送一封 HTML 邮件
func (m *Mailer) Send(subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("发送邮件失败", zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}
