package seq

import (
	"errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// ErrClosed is returned by ReadNext once the listener has been closed.
var ErrClosed = errors.New("seq: listener closed")

type rawEvent struct {
	msg   midi.Message
	absms int32
}

// Listener is the connection to the system sequencer: one subscribed
// input port plus the translator fed by it. A listener is meant to be
// read from a single goroutine. Close may be called from another
// goroutine to unblock a pending ReadNext, but never concurrently with
// itself.
type Listener struct {
	in     drivers.In
	stop   func()
	raw    chan rawEvent
	done   chan struct{}
	closed bool
	tr     *Translator
	logger *charmlog.Logger
}

// Open connects to the system sequencer and subscribes an input port.
// If cfg.PortName names an existing port it is used, otherwise a virtual
// write-subscribable port is created under the client name. Each setup
// step fails the whole open: there is no partial recovery, callers are
// expected to treat an error as fatal.
func Open(cfg Config) (*Listener, error) {
	logger := charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          cfg.ClientName,
	})

	in, err := midi.FindInPort(cfg.PortName)
	if err != nil {
		logger.Info("can't find input, opening a virtual one", "port", cfg.PortName)
		drv, ok := drivers.Get().(*rtmididrv.Driver)
		if !ok {
			return nil, errors.New("seq: no sequencer driver registered")
		}
		in, err = drv.OpenVirtualIn(cfg.ClientName)
		if err != nil {
			return nil, fmt.Errorf("seq: create port: %w", err)
		}
	}
	logger.Info("input", "port", in.String())

	l := &Listener{
		in:     in,
		raw:    make(chan rawEvent, 10),
		done:   make(chan struct{}),
		tr:     NewTranslator(cfg.BPM, logger),
		logger: logger,
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, absms int32) {
		select {
		case l.raw <- rawEvent{msg: msg, absms: absms}:
		case <-l.done:
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("listener error", "err", listenErr)
	}))
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("seq: subscribe: %w", err)
	}
	l.stop = stop
	return l, nil
}

// ReadNext blocks until the next event arrives on the input port, then
// translates it into the shared record. The returned pointer is only
// valid until the next call. After Close it returns ErrClosed.
func (l *Listener) ReadNext() (*Event, error) {
	select {
	case ev := <-l.raw:
		return l.tr.Translate(ev.msg, ev.absms), nil
	case <-l.done:
		return nil, ErrClosed
	}
}

// Port returns the name of the subscribed input port.
func (l *Listener) Port() string {
	return l.in.String()
}

// Close stops the subscription and closes the port, unblocking any
// pending ReadNext.
func (l *Listener) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.done)
	if l.stop != nil {
		l.stop()
	}
	if l.in.IsOpen() {
		return l.in.Close()
	}
	return nil
}
