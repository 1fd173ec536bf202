package rpc_test

import (
	"testing"
	"time"

	"github.com/vsariola/levelmeter/rpc"
)

func TestSendReceive(t *testing.T) {
	receiver, addr, err := rpc.Receiver("127.0.0.1:0")
	if err != nil {
		t.Fatalf("rpc.Receiver error: %v", err)
	}
	sender, err := rpc.Sender(addr.String())
	if err != nil {
		t.Fatalf("rpc.Sender error: %v", err)
	}
	defer close(sender)
	want := []float32{0.25, 1.5, 0.5}
	for _, v := range want {
		sender <- v
	}
	var got []float32
	for len(got) < len(want) {
		select {
		case batch := <-receiver:
			got = append(got, batch...)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for peaks, got %v", got)
		}
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSenderWithoutReceiver(t *testing.T) {
	receiver, addr, err := rpc.Receiver("127.0.0.1:0")
	if err != nil {
		t.Fatalf("rpc.Receiver error: %v", err)
	}
	_ = receiver
	if _, _, err := rpc.Receiver(addr.String()); err == nil {
		t.Fatal("listening twice on the same address should fail")
	}
	if _, err := rpc.Sender("127.0.0.1:1"); err == nil {
		t.Fatal("dialing a closed port should fail")
	}
}
