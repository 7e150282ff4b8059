package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const DefaultStockAlertSchedule = "0 9 * * *"

// MessageSender delivers a text message and returns the provider id.
type MessageSender interface {
	Send(to, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSid, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// StockAlertService sends a daily digest of items at or below the low-stock
// threshold.
type StockAlertService struct {
	inventory *InventoryService
	sender    MessageSender
	to        string
	log       logrus.FieldLogger
	cron      *cron.Cron
}

// NewStockAlertService builds the digest job. sender may be nil, in which
// case the digest is only logged.
func NewStockAlertService(inventory *InventoryService, sender MessageSender, to string, log logrus.FieldLogger) *StockAlertService {
	return &StockAlertService{
		inventory: inventory,
		sender:    sender,
		to:        to,
		log:       log,
	}
}

func (s *StockAlertService) StartScheduler(spec string) error {
	if spec == "" {
		spec = DefaultStockAlertSchedule
	}
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.SendDigest(context.Background()); err != nil {
			s.log.WithError(err).Error("low-stock digest failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.WithField("schedule", spec).Info("low-stock digest scheduler started")
	return nil
}

// Stop waits for a running digest to finish.
func (s *StockAlertService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SendDigest derives alerts from the current inventory and reports them.
// It returns the number of low-stock items.
func (s *StockAlertService) SendDigest(ctx context.Context) (int, error) {
	alerts, err := s.inventory.Alerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("derive alerts: %w", err)
	}
	if len(alerts) == 0 {
		s.log.Info("low-stock digest: all items stocked")
		return 0, nil
	}

	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("%s (%d left)", a.ItemName, a.Quantity))
	}
	body := fmt.Sprintf("Low stock: %d item(s) at or below %d. %s",
		len(alerts), s.inventory.Threshold(), strings.Join(lines, ", "))
	s.log.WithField("items", len(alerts)).Warn(body)

	if s.sender == nil || s.to == "" {
		return len(alerts), nil
	}
	sid, err := s.sender.Send(s.to, body)
	if err != nil {
		s.log.WithError(err).WithField("to", s.to).Error("failed to send low-stock digest")
		return len(alerts), nil
	}
	s.log.WithFields(logrus.Fields{"to": s.to, "sid": sid}).Info("low-stock digest sent")
	return len(alerts), nil
}
