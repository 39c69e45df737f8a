// Package nats runs the embedded JetStream server that stores wizard drafts.
package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/secconsole/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Embedded is an in-process NATS server with a connected JetStream context
// and the console stream already set up.
type Embedded struct {
	Server    *server.Server
	Conn      *nats.Conn
	JetStream jetstream.JetStream
	Stream    jetstream.Stream
}

// Start boots an embedded server storing JetStream data under dataDir,
// connects to it in-process and ensures the console stream exists.
func Start(ctx context.Context, dataDir string) (*Embedded, error) {
	ns, err := StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, err
	}

	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	stream, err := SetupStream(ctx, js)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("setting up stream: %w", err)
	}

	return &Embedded{Server: ns, Conn: nc, JetStream: js, Stream: stream}, nil
}

// Close drains the connection and stops the server.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}
	return Shutdown(e.Conn, e.Server)
}

// StartEmbeddedNATS starts a JetStream-enabled server that listens on no
// network port.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	logger.Debug("NATS server ready for connections")
	return ns, nil
}

// ConnectInProcess connects to ns without going through the network stack.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		return nil, fmt.Errorf("connecting to nats in-process: %w", err)
	}
	return conn, nil
}

// Shutdown drains nc, falling back to a hard close if draining stalls, then
// stops ns and waits for it to exit.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			nc.Close()
		}
	}

	if ns == nil {
		return nil
	}

	ns.Shutdown()
	shutdownDone := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		logger.Debug("NATS server shut down cleanly")
		return nil
	case <-time.After(shutdownTimeout):
		logger.Error("NATS server shutdown timed out after %s", shutdownTimeout)
		return errors.New("nats server shutdown timed out")
	}
}
