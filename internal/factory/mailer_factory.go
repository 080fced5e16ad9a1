package factory

import (
	"github.com/mikey/phish-trainer/internal/adapters/httpapi"
	"github.com/mikey/phish-trainer/internal/adapters/mailer"
	"github.com/mikey/phish-trainer/internal/config"
	"go.uber.org/zap"
)

// MailerFactory creates the training inbox deliverer
type MailerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailerFactory creates a new mailer factory
func NewMailerFactory(cfg *config.Config, logger *zap.Logger) *MailerFactory {
	return &MailerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDeliverer returns nil when smtp.enabled is false
func (f *MailerFactory) CreateDeliverer() httpapi.Deliverer {
	smtpConfig := f.cfg.GetSMTP()
	if !smtpConfig.Enabled {
		f.logger.Info("Training inbox delivery disabled")
		return nil
	}

	f.logger.Info("Training inbox delivery enabled",
		zap.String("relay", smtpConfig.Address),
		zap.String("envelope_from", smtpConfig.EnvelopeFrom))
	return mailer.NewSMTPMailer(smtpConfig.Address, smtpConfig.EnvelopeFrom, smtpConfig.Helo, f.logger)
}
