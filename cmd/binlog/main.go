// Command binlog inspects a MySQL v4 binary log file or a replica-style
// binlog directory, printing each decoded event.
//
// binlog view file <path/to/binlog.000001>
// binlog view dir <path/to/binlog/dir> <start-file>
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	mbinlog "github.com/tekuri-binlog/mbinlog"
)

func main() {
	if len(os.Args) < 4 || os.Args[1] != "view" {
		logrus.Fatal("usage: binlog view file|dir <path> [start-file]")
	}

	switch os.Args[2] {
	case "file":
		viewFile(os.Args[3])
	case "dir":
		if len(os.Args) < 5 {
			logrus.Fatal("usage: binlog view dir <path> <start-file>")
		}
		viewDir(os.Args[3], os.Args[4])
	default:
		logrus.Fatalf("unknown source kind %q", os.Args[2])
	}
}

func viewFile(path string) {
	bf, f, err := mbinlog.OpenBinlogFile(4, path)
	if err != nil {
		logrus.WithError(err).Fatal("binlog: open file")
	}
	defer f.Close()

	for {
		ev, err := bf.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			logrus.WithError(err).Fatal("binlog: read event")
		}
		printEvent(ev, bf.FDE())
	}
}

func viewDir(dir, startFile string) {
	bd, err := mbinlog.OpenBinlogDir(4, dir, startFile)
	if err != nil {
		logrus.WithError(err).Fatal("binlog: open directory")
	}
	defer bd.Close()

	for {
		ev, err := bd.Next()
		if err != nil {
			logrus.WithError(err).Fatal("binlog: read event")
		}
		printEvent(ev, bd.FDE())
	}
}

func printEvent(ev mbinlog.Event, fde *mbinlog.FormatDescriptionEvent) {
	log := logrus.WithFields(logrus.Fields{
		"type":    ev.Header.EventType.Value(),
		"size":    ev.Header.EventSize,
		"logPos":  ev.Header.LogPos,
		"checksum": ev.ChecksumAlg,
	})
	payload, err := ev.ReadPayload(fde)
	if err != nil {
		log.WithError(err).Warn("binlog: decode payload")
		return
	}
	log.Infof("%#v", payload)
}
