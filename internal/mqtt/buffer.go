package mqtt

import "log"

// message stores a serialized MQTT message for replay after reconnection.
type message struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a fixed-capacity FIFO holding messages while the broker is
// unreachable. When full, the oldest message is dropped.
// Not safe for concurrent use — caller must synchronize.
type backlog struct {
	buf     []message
	start   int // oldest message position
	count   int
	dropped bool // a message was dropped since the last drain
}

func newBacklog(capacity int) *backlog {
	return &backlog{buf: make([]message, capacity)}
}

func (b *backlog) push(msg message) {
	if b.count == len(b.buf) {
		if !b.dropped {
			log.Printf("mqtt: backlog full (%d messages), dropping oldest", len(b.buf))
			b.dropped = true
		}
		b.buf[b.start] = msg
		b.start = (b.start + 1) % len(b.buf)
		return
	}
	b.buf[(b.start+b.count)%len(b.buf)] = msg
	b.count++
}

// drain returns all buffered messages, oldest first, and empties the
// backlog.
func (b *backlog) drain() []message {
	if b.count == 0 {
		return nil
	}

	out := make([]message, b.count)
	for i := range out {
		out[i] = b.buf[(b.start+i)%len(b.buf)]
	}

	b.start = 0
	b.count = 0
	b.dropped = false
	return out
}

func (b *backlog) len() int {
	return b.count
}
