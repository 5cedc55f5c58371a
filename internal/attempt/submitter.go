package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Submitter delivers one attempt and returns the server's receipt.
type Submitter interface {
	Submit(ctx context.Context, a Attempt) (Receipt, error)
}

// WSSubmitter sends each attempt over its own websocket: one JSON message out,
// one receipt back.
type WSSubmitter struct {
	URL     string
	Timeout time.Duration
}

func NewWSSubmitter(url string) *WSSubmitter {
	return &WSSubmitter{URL: url, Timeout: 10 * time.Second}
}

func (s *WSSubmitter) Submit(ctx context.Context, a Attempt) (Receipt, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	conn, _, err := websocket.Dial(ctx, s.URL, nil)
	if err != nil {
		return Receipt{}, fmt.Errorf("dial %s: %w", s.URL, err)
	}
	defer conn.CloseNow()

	if err := wsjson.Write(ctx, conn, a); err != nil {
		return Receipt{}, fmt.Errorf("send attempt %s: %w", a.ClientID, err)
	}
	var r Receipt
	if err := wsjson.Read(ctx, conn, &r); err != nil {
		return Receipt{}, fmt.Errorf("read receipt %s: %w", a.ClientID, err)
	}
	conn.Close(websocket.StatusNormalClosure, "")
	return r, nil
}
