package notifier

import (
	"context"
	"fmt"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/pkg/errs"
	"engagement-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// AddressBook resolves a subject id to a delivery address. The scheduler core
// only knows subject ids; address resolution is a notifier concern.
type AddressBook interface {
	EmailFor(ctx context.Context, subjectID uuid.UUID) (string, error)
}

// SendGridNotifier delivers nudges as transactional email via SendGrid.
type SendGridNotifier struct {
	client    *sendgrid.Client
	from      *sgmail.Email
	addresses AddressBook
}

func NewSendGridNotifier(apiKey, fromName, fromEmail string, addresses AddressBook) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		from:      sgmail.NewEmail(fromName, fromEmail),
		addresses: addresses,
	}
}

func (n *SendGridNotifier) Send(ctx context.Context, subjectID uuid.UUID, stageID sequence.StageID, contentRef string) (*commands.DeliveryReceipt, error) {
	tpl, err := resolveTemplate(contentRef)
	if err != nil {
		return nil, err
	}

	addr, err := n.addresses.EmailFor(ctx, subjectID)
	if err != nil {
		return nil, errs.Wrap(err, "resolve address")
	}

	msg := sgmail.NewSingleEmail(n.from, tpl.Subject, sgmail.NewEmail("", addr), tpl.Text, tpl.HTML)

	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return nil, errs.Wrap(err, "sendgrid send")
	}
	if resp.StatusCode >= 300 {
		return nil, errs.New(fmt.Sprintf("sendgrid send: status %d for stage %s", resp.StatusCode, stageID))
	}

	receipt := &commands.DeliveryReceipt{}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		receipt.MessageID = ids[0]
	}
	return receipt, nil
}
