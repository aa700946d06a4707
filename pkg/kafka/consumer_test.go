package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

func TestStopClosesQueueAfterFetchLoops(t *testing.T) {
	c := &Consumer{
		cfg:      &ConsumerConfig{WorkerCount: 1},
		readers:  map[string]*kafkago.Reader{},
		handlers: map[string]MessageHandler{},
		stopChan: make(chan struct{}),
		msgChan:  make(chan *message, 1),
	}
	c.workWG.Add(1)
	go c.worker()

	// Stand-in for a fetch loop: keeps sending until told to stop. Stop
	// must not close msgChan while this goroutine can still send.
	c.consWG.Add(1)
	go func() {
		defer c.consWG.Done()
		for {
			select {
			case <-c.stopChan:
				return
			case c.msgChan <- &message{topic: "rows", data: []byte("{}")}:
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	c := &Consumer{
		cfg:      &ConsumerConfig{},
		readers:  map[string]*kafkago.Reader{},
		handlers: map[string]MessageHandler{},
		stopChan: make(chan struct{}),
		msgChan:  make(chan *message),
	}
	ctx := context.Background()
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
