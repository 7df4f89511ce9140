package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const streamName = "EVENTS"

// Connect opens a connection shared by the publisher and the subscriber.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("lead-engagement"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
