package serialkbd

import (
	"io"

	"go.bug.st/serial"
)

// Port reads key frames from a serial device.
type Port struct {
	port serial.Port
	buf  [2]byte
}

func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

func OpenPort(name string, baud int) (*Port, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	p.ResetInputBuffer()
	return &Port{port: p}, nil
}

// Next blocks until a full two-byte frame has been read.
func (p *Port) Next() (KeyEvent, error) {
	if _, err := io.ReadFull(p.port, p.buf[:]); err != nil {
		return KeyEvent{}, err
	}
	return DecodeFrame(p.buf[0], p.buf[1]), nil
}

func (p *Port) Close() error {
	return p.port.Close()
}
