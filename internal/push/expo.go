// Package push delivers notifications to devices through the Expo push
// gateway. Tokens are Expo push tokens registered by the mobile client; the
// sender chunks messages to stay inside the gateway's batch limit.
package push

import (
	"github.com/rs/zerolog/log"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// batchSize is the Expo publish API's per-request message cap.
const batchSize = 100

// Publisher is the Expo client surface used by the Sender. Tests substitute
// a fake.
type Publisher interface {
	PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error)
}

// Message is one notification to deliver.
type Message struct {
	Token string            // Expo push token ("ExponentPushToken[...]")
	Title string
	Body  string
	Data  map[string]string // forwarded opaquely to the app
}

// Sender fans messages out to the gateway.
type Sender struct {
	client Publisher
}

// NewSender wraps the given Expo client.
func NewSender(client Publisher) *Sender {
	return &Sender{client: client}
}

// NewExpoClient builds the default production client.
func NewExpoClient() *expo.PushClient {
	return expo.NewPushClient(nil)
}

// IsExpoToken reports whether token parses as an Expo push token. Invalid
// tokens are dropped before sending rather than burned against the gateway.
func IsExpoToken(token string) bool {
	_, err := expo.NewExponentPushToken(token)
	return err == nil
}

// Send delivers the given messages, chunked to the gateway batch limit.
// Messages with unparseable tokens are skipped and counted as failures.
// It returns the number of messages accepted by the gateway; per-message
// rejections (device not registered, etc.) are logged, not fatal.
func (s *Sender) Send(msgs []Message) (accepted int, err error) {
	batch := make([]expo.PushMessage, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		responses, err := s.client.PublishMultiple(batch)
		batch = batch[:0]
		if err != nil {
			return err
		}
		for _, r := range responses {
			if vErr := r.ValidateResponse(); vErr != nil {
				log.Warn().Err(vErr).Str("to", string(r.PushMessage.To[0])).Msg("push rejected")
				continue
			}
			accepted++
		}
		return nil
	}

	for _, m := range msgs {
		token, tokErr := expo.NewExponentPushToken(m.Token)
		if tokErr != nil {
			log.Warn().Str("token", m.Token).Msg("skipping invalid push token")
			continue
		}
		batch = append(batch, expo.PushMessage{
			To:       []expo.ExponentPushToken{token},
			Title:    m.Title,
			Body:     m.Body,
			Data:     m.Data,
			Sound:    "default",
			Priority: expo.DefaultPriority,
		})
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return accepted, err
			}
		}
	}
	if err := flush(); err != nil {
		return accepted, err
	}
	return accepted, nil
}
