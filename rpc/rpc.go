// Package rpc links a meter to a remote audio source, e.g. a plugin running
// inside a host streaming its peaks to a standalone meter window.
package rpc

import (
	"fmt"
	"log"
	"net"
	"net/rpc"
)

// DefaultAddress is where the receiver listens unless told otherwise.
const DefaultAddress = "127.0.0.1:31337"

type PeakServer struct {
	channel chan []float32
}

// Peaks receives a batch of linear peak values. A lagging receiver drops
// batches instead of blocking the sender.
func (s *PeakServer) Peaks(peaks []float32, reply *int) error {
	select {
	case s.channel <- peaks:
		*reply = len(peaks)
	default:
	}
	return nil
}

// Receiver starts listening on addr and returns a channel of received peak
// batches and the address actually listened on, which matters if addr had
// port 0. The channel is closed when the listener fails.
func Receiver(addr string) (<-chan []float32, net.Addr, error) {
	c := make(chan []float32, 64)
	server := rpc.NewServer()
	if err := server.Register(&PeakServer{channel: c}); err != nil {
		return nil, nil, fmt.Errorf("rpc.Register failed: %w", err)
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("net.Listen failed: %w", err)
	}
	go func() {
		defer close(c)
		server.Accept(l)
	}()
	return c, l.Addr(), nil
}

// maxBatch limits how many pending peaks are sent in one call.
const maxBatch = 256

// Sender dials a receiver and returns a channel whose peaks are forwarded to
// it, batching whatever has queued up while the previous call was in flight.
// Close the channel to hang up. After the first failed call the remaining
// peaks are drained and dropped.
func Sender(addr string) (chan<- float32, error) {
	c := make(chan float32, maxBatch)
	client, err := rpc.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("rpc.Dial failed: %w", err)
	}
	go func() {
		defer client.Close()
		batch := make([]float32, 0, maxBatch)
		broken := false
		for peak := range c {
			if broken {
				continue
			}
			batch = append(batch[:0], peak)
		fill:
			for len(batch) < maxBatch {
				select {
				case p, ok := <-c:
					if !ok {
						break fill
					}
					batch = append(batch, p)
				default:
					break fill
				}
			}
			var reply int
			if err := client.Call("PeakServer.Peaks", batch, &reply); err != nil {
				log.Printf("PeakServer.Peaks error: %v", err)
				broken = true
			}
		}
	}()
	return c, nil
}
