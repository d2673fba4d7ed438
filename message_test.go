package join

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestReplyBox_FulfilThenWait(t *testing.T) {
	box := newReplyBox[int]()
	box.fulfil(42)
	v, err := box.wait(context.Background())
	if err != nil || v != 42 {
		t.Fatalf("got (%v, %v), want (42, nil)", v, err)
	}
}

func TestReplyBox_BreakReplyThenWait(t *testing.T) {
	box := newReplyBox[string]()
	cause := errors.New("broken")
	box.breakReply(cause)
	_, err := box.wait(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("got %v, want %v", err, cause)
	}
}

func TestReplyBox_WaitCtxDone(t *testing.T) {
	box := newReplyBox[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := box.wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context.DeadlineExceeded", err)
	}
}

func TestReplyBreakerOf(t *testing.T) {
	box := newReplyBox[int]()
	if brk, ok := replyBreakerOf(box); !ok || brk != replyBreaker(box) {
		t.Fatal("expected replyBreakerOf to recognize a bare *replyBox")
	}

	bp := bidirPayload{input: 1, reply: box}
	if brk, ok := replyBreakerOf(bp); !ok || brk != replyBreaker(box) {
		t.Fatal("expected replyBreakerOf to recognize a bidirPayload's reply")
	}

	if _, ok := replyBreakerOf(123); ok {
		t.Fatal("plain Send payload should not be a replyBreaker")
	}
}
