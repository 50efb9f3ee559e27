package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Notifier wraps the LISTEN/NOTIFY mechanism in PostgreSQL.  A notification is
// sent on the configured channel whenever a consultation is booked, so staff
// tooling can react without polling the consultations table.
type Notifier struct {
	DB      *sql.DB
	Channel string
}

// NewNotifier constructs a new Notifier.  The channel should match the
// POSTGRES_NOTIFY_CHANNEL environment variable.
func NewNotifier(db *sql.DB, channel string) *Notifier {
	return &Notifier{DB: db, Channel: channel}
}

// Notify sends a notification to the channel carrying the consultation id.
func (n *Notifier) Notify(ctx context.Context, consultationID string) error {
	channel := pq.QuoteIdentifier(n.Channel)
	_, err := n.DB.ExecContext(ctx,
		fmt.Sprintf("SELECT pg_notify(%s, $1)", channel), consultationID)
	return err
}

// Listen yields consultation ids as they arrive on the channel until the
// context is cancelled.  Staff-side consumers use this to follow new bookings.
func (n *Notifier) Listen(ctx context.Context, connInfo string) (<-chan string, error) {
	listener := pq.NewListener(connInfo, 10*time.Second, time.Minute, nil)
	if err := listener.Listen(n.Channel); err != nil {
		_ = listener.Close()
		return nil, err
	}
	ch := make(chan string)
	go func() {
		defer func() {
			_ = listener.Close()
			close(ch)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case note, ok := <-listener.Notify:
				if !ok {
					return
				}
				if note == nil {
					// Reconnect marker from the driver; nothing to deliver.
					continue
				}
				select {
				case ch <- note.Extra:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
