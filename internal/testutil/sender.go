package testutil

import (
	"context"
	"fmt"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/relay"
)

// ScriptedSender is a fake relay that records every send and fails the
// destinations it was told to fail. The zero value succeeds everything.
type ScriptedSender struct {
	// FailTo maps destination address -> failure message.
	FailTo map[string]string

	// Sent records every message that reached the fake, in order,
	// including ones that were scripted to fail.
	Sent []relay.Message
}

// Send records the message and returns the scripted outcome.
func (f *ScriptedSender) Send(ctx context.Context, msg relay.Message) (relay.Receipt, error) {
	f.Sent = append(f.Sent, msg)
	if reason, ok := f.FailTo[msg.To]; ok {
		return relay.Receipt{}, fmt.Errorf("relay rejected message: %s", reason)
	}
	return relay.Receipt{MessageID: fmt.Sprintf("msg-%d", len(f.Sent))}, nil
}

// Calls returns how many messages reached the fake.
func (f *ScriptedSender) Calls() int { return len(f.Sent) }
