package mail

import (
	"context"

	"github.com/dmitrijs2005/cashlog/internal/logging"
)

// LogMailer is used when email delivery is disabled (use_email=false): the
// login link is written to the log instead of being sent, so a developer can
// complete the flow by copying the URL.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "mail")}
}

func (m *LogMailer) SendLoginLink(ctx context.Context, email, url string) error {
	m.logger.Info(ctx, "not sending email", "to", email, "login_url", url)
	return nil
}
