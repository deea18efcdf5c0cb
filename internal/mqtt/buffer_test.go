package mqtt

import "testing"

func pushN(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(4)
	got, dropped := rb.drainAll()
	if got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
}

func TestRingBufferKeepsOrder(t *testing.T) {
	rb := newRingBuffer(8)
	pushN(rb, 0, 6)

	got, _ := rb.drainAll()
	if len(got) != 6 {
		t.Fatalf("expected 6 items, got %d", len(got))
	}
	for i, msg := range got {
		if msg.payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, msg.payload[0])
		}
	}

	if again, _ := rb.drainAll(); again != nil {
		t.Errorf("expected nil from second drain, got %d items", len(again))
	}
}

func TestRingBufferDropsOldest(t *testing.T) {
	rb := newRingBuffer(4)
	pushN(rb, 0, 7) // 0..6, keeps 3..6

	got, dropped := rb.drainAll()
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	if dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", dropped)
	}
	for i, msg := range got {
		if want := byte(i + 3); msg.payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, msg.payload[0])
		}
	}
}

func TestRingBufferReuseAfterWrap(t *testing.T) {
	rb := newRingBuffer(3)
	pushN(rb, 0, 5)
	rb.drainAll()

	pushN(rb, 20, 22)
	got, dropped := rb.drainAll()
	if dropped != 0 {
		t.Errorf("expected dropped reset after drain, got %d", dropped)
	}
	if len(got) != 2 || got[0].payload[0] != 20 || got[1].payload[0] != 21 {
		t.Errorf("unexpected items after wrap: %+v", got)
	}
}

func TestRingBufferLen(t *testing.T) {
	rb := newRingBuffer(2)
	if rb.len() != 0 {
		t.Errorf("expected len 0, got %d", rb.len())
	}
	pushN(rb, 0, 5)
	if rb.len() != 2 {
		t.Errorf("expected len capped at 2, got %d", rb.len())
	}
	rb.drainAll()
	if rb.len() != 0 {
		t.Errorf("expected len 0 after drain, got %d", rb.len())
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(2)
	rb.push(bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"system":{}}`),
		qos:      1,
		retained: true,
	})

	got, _ := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	m := got[0]
	if m.topic != TopicSystem || string(m.payload) != `{"system":{}}` || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}
