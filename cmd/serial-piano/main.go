package main

import (
	"errors"
	"flag"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"midilisten/serialkbd"
)

func main() {
	portName := flag.String("port", "/dev/ttyACM0", "serial port, e.g. /dev/ttyUSB0")
	baud := flag.Int("baud", 115200, "serial baud rate")
	keymapFile := flag.String("keymap", "keymap.txt", "path of keymap file (format: one 'keycode:note' per line)")
	outPort := flag.String("output", "", "MIDI output port name")
	debug := flag.Bool("debug", false, "log every key event")

	flag.Parse()

	logger := charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "serial-piano",
	})
	if *debug {
		logger.SetLevel(charmlog.DebugLevel)
	}

	keymap, err := serialkbd.LoadKeymap(*keymapFile)
	if err != nil {
		logger.Fatal(err)
	}

	ports, err := serialkbd.ListPorts()
	if err != nil {
		logger.Fatal(err)
	}
	if len(ports) == 0 {
		logger.Fatal("no serial ports found")
	}
	for _, port := range ports {
		logger.Info("found serial port", "port", port)
	}
	if *portName == "" {
		*portName = ports[0]
	}

	port, err := serialkbd.OpenPort(*portName, *baud)
	if err != nil {
		logger.Fatal(err)
	}
	defer port.Close()

	defer midi.CloseDriver()
	out, err := midi.FindOutPort(*outPort)
	if err != nil {
		logger.Info("can't find output, opening a virtual one", "port", *outPort)
		out, err = drivers.Get().(*rtmididrv.Driver).OpenVirtualOut("serial-piano")
		if err != nil {
			logger.Fatal(err)
		}
	}
	logger.Info("output", "port", out.String())

	send, err := midi.SendTo(out)
	if err != nil {
		logger.Fatal(err)
	}

	kb := serialkbd.NewKeyboard(keymap, logger)
	for {
		ev, err := port.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("serial port closed")
				return
			}
			logger.Error("serial read", "err", err)
			continue
		}
		logger.Debug("key", "code", ev.Code, "pressed", ev.Pressed)
		msg, ok := kb.Translate(ev)
		if !ok {
			continue
		}
		if err := send(msg); err != nil {
			logger.Error("send", "err", err)
		}
	}
}
