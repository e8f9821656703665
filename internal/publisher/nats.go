package publisher

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// AlertEvent is broadcast whenever the admin layer changes a service alert,
// so downstream consumers (displays, push notifiers) can react without
// polling.
type AlertEvent struct {
	Action      string    `json:"action"` // created | updated | deleted
	AlertID     uint      `json:"alertId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	RouteIDs    []uint    `json:"routeIds"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	PublishedAt time.Time `json:"publishedAt"`
}

// AlertPublisher pushes alert lifecycle events onto NATS subjects of the
// form "<prefix>.<action>".
type AlertPublisher struct {
	nc            *nats.Conn
	subjectPrefix string
}

func NewAlertPublisher(url, subjectPrefix string) (*AlertPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transit-info"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			logrus.Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logrus.Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logrus.Info("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if subjectPrefix == "" {
		subjectPrefix = "transit.alerts"
	}
	return &AlertPublisher{nc: nc, subjectPrefix: subjectPrefix}, nil
}

func (p *AlertPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

func (p *AlertPublisher) Publish(ev AlertEvent) error {
	ev.PublishedAt = time.Now().UTC()
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	subject := p.subjectPrefix + "." + subjectToken(ev.Action)
	return p.nc.Publish(subject, b)
}

// subjectToken strips characters NATS subjects cannot carry.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
