package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/AmirulAndalib/libtorrent/internal/fixture"
	"github.com/AmirulAndalib/libtorrent/internal/recorder"
	"github.com/AmirulAndalib/libtorrent/internal/webserver"
	log "github.com/sirupsen/logrus"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	root := flag.String("root", ".", "directory to serve files from")
	requestLog := flag.String("request-log", "", "optional sqlite file recording served requests")
	secure := flag.Bool("ssl", false, "accepted for compatibility, not implemented")
	flag.Parse()

	if err := fixture.EnsureRelativeDir(*root); err != nil {
		log.Fatalf("preparing serve root: %v", err)
	}

	opts := webserver.Options{Port: *port, Secure: *secure, Root: *root}
	if *requestLog != "" {
		rec, err := recorder.Open(*requestLog)
		if err != nil {
			log.Fatalf("opening request log: %v", err)
		}
		defer rec.Close()
		opts.Recorder = rec
	}

	srv, err := webserver.Start(opts)
	if err != nil {
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	srv.Stop()
	log.Info("server stopped")
}
