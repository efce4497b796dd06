package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/robotalks/framlog.go/pkg/env"
	"github.com/robotalks/framlog.go/pkg/framlog"
	"github.com/robotalks/framlog.go/pkg/mirror/mqtt"
)

var demoPanic bool

func init() {
	env.SetupFlags()
	flag.BoolVar(&demoPanic, "panic", demoPanic, "Raise a demo fault after logging.")
}

func main() {
	flag.Parse()

	conf := env.NewConfig()
	st := conf.MustNewStore()
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}
	logger := framlog.New(st)
	capture := framlog.NewCapture(logger)
	sink := framlog.NewSink(logger)

	var queue *mqtt.Queue
	if q, err := conf.NewMirrorQueue(); err != nil {
		log.Printf("mirror unavailable: %v", err)
	} else if q != nil {
		queue = q
		defer queue.Close()
		remote := mqtt.NewMirror(queue, mqtt.LogTopic(env.MachineID()))
		capture.Out = io.MultiWriter(os.Stderr, remote)
		sink.Mirror = io.MultiWriter(os.Stdout, remote)
	}

	if err := framlog.Install(capture); err != nil {
		log.Fatalln(err)
	}
	defer framlog.Recover()

	// previous session first, this session overwrites from the origin
	if text, err := logger.ReadAll(); err != nil {
		log.Printf("replay failed: %v", err)
	} else {
		framlog.Render(os.Stdout, text)
		if queue != nil {
			queue.Pub(mqtt.BootTopic(env.MachineID()), []byte(text))
		}
	}

	framlog.Use(sink)

	if err := logger.Println("FRAM logger test"); err != nil {
		log.Printf("append failed: %v", err)
	}
	log.Printf("session up on %s", env.MachineID())

	if demoPanic {
		data := []byte{0x32, 0x00, 0x12}
		for i := 0; i <= len(data); i++ {
			logger.Printf("data[%d] = %d\n", i, data[i])
		}
	}
}
