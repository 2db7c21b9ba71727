package binlog

import (
	"bufio"
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BinlogFile reads events out of a single binlog file already positioned
// past the 4-byte file header, per §3/§5.
type BinlogFile struct {
	stream *EventStreamReader
}

// NewBinlogFile validates r's file header and returns a reader for the
// events that follow it.
func NewBinlogFile(binlogVersion uint16, r io.Reader) (*BinlogFile, error) {
	hdr := make([]byte, FileHeaderLen)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, errors.Wrap(err, "binlog: read file header")
	}
	if err := DecodeFileHeader(hdr); err != nil {
		return nil, err
	}
	return &BinlogFile{stream: NewEventStreamReader(r, binlogVersion)}, nil
}

// Next returns the next event, or io.EOF at a clean file end.
func (bf *BinlogFile) Next() (Event, error) {
	return bf.stream.Next()
}

// FDE returns the FormatDescriptionEvent currently in effect.
func (bf *BinlogFile) FDE() *FormatDescriptionEvent {
	return bf.stream.FDE()
}

// OpenBinlogFile opens name, validates its file header, and returns a
// BinlogFile over it. The caller owns closing the returned file handle,
// reachable via BinlogFile is not exposed; use OpenBinlogDir for
// directory-rotation mode, which manages file handles for you.
func OpenBinlogFile(binlogVersion uint16, name string) (*BinlogFile, *os.File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	bf, err := NewBinlogFile(binlogVersion, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return bf, f, nil
}

// BinlogDir reads a sequence of rotated binlog files out of a directory
// driven by its binlog.index, switching to the next indexed file once
// the current one is exhausted, and polling for a new one to appear if
// the index names no successor yet. Grounded on the rotation behavior of
// a replica reading a master's local binlog directory.
type BinlogDir struct {
	dir          string
	binlogVersion uint16
	pollInterval time.Duration

	file    *os.File
	curName string
	stream  *EventStreamReader
}

// OpenBinlogDir opens dir and seeks to the named binlog file (typically
// the oldest entry in binlog.index) to begin reading from its start.
func OpenBinlogDir(binlogVersion uint16, dir, startFile string) (*BinlogDir, error) {
	bd := &BinlogDir{dir: dir, binlogVersion: binlogVersion, pollInterval: time.Second}
	if err := bd.openFile(startFile); err != nil {
		return nil, err
	}
	return bd, nil
}

func (bd *BinlogDir) openFile(name string) error {
	f, err := os.Open(path.Join(bd.dir, name))
	if err != nil {
		return err
	}
	hdr := make([]byte, FileHeaderLen)
	if _, err := io.ReadFull(f, hdr); err != nil {
		f.Close()
		return errors.Wrapf(err, "binlog: read file header of %s", name)
	}
	if err := DecodeFileHeader(hdr); err != nil {
		f.Close()
		return err
	}
	bd.file = f
	bd.curName = name
	bd.stream = NewEventStreamReader(f, bd.binlogVersion)
	return nil
}

// CurrentFile returns the base name of the binlog file currently being read.
func (bd *BinlogDir) CurrentFile() string {
	return bd.curName
}

// FDE returns the FormatDescriptionEvent currently in effect.
func (bd *BinlogDir) FDE() *FormatDescriptionEvent {
	return bd.stream.FDE()
}

// Next returns the next event across the directory's file rotation. It
// never returns io.EOF on its own: reaching the end of a file that
// binlog.index does not yet name a successor for blocks, polling until
// one appears, exactly as a replica tailing a live master would.
func (bd *BinlogDir) Next() (Event, error) {
	for {
		ev, err := bd.stream.Next()
		if err == nil {
			return ev, nil
		}
		if err != io.EOF {
			return Event{}, err
		}
		if err := bd.rotate(); err != nil {
			return Event{}, err
		}
	}
}

func (bd *BinlogDir) rotate() error {
	for {
		next, err := bd.nextIndexedFile()
		if err != nil {
			return err
		}
		if next == "" {
			logrus.WithField("file", bd.curName).Debug("binlog: waiting for next indexed file")
			time.Sleep(bd.pollInterval)
			continue
		}
		if _, err := os.Stat(path.Join(bd.dir, next)); err != nil {
			if os.IsNotExist(err) {
				time.Sleep(bd.pollInterval)
				continue
			}
			return err
		}
		logrus.WithFields(logrus.Fields{"from": bd.curName, "to": next}).Info("binlog: rotating to next file")
		bd.file.Close()
		return bd.openFile(next)
	}
}

// nextIndexedFile returns the file named immediately after the current
// one in binlog.index, or "" if the current file is the last entry.
func (bd *BinlogDir) nextIndexedFile() (string, error) {
	idx, err := os.Open(path.Join(bd.dir, "binlog.index"))
	if err != nil {
		return "", err
	}
	defer idx.Close()
	sc := bufio.NewScanner(idx)
	var prev string
	for sc.Scan() {
		if prev == bd.curName {
			return sc.Text(), nil
		}
		prev = sc.Text()
	}
	return "", sc.Err()
}

// Close releases the currently open file handle.
func (bd *BinlogDir) Close() error {
	return bd.file.Close()
}

// ListBinlogFiles reads dir's binlog.index and returns the files it
// names, in order.
func ListBinlogFiles(dir string) ([]string, error) {
	f, err := os.Open(path.Join(dir, "binlog.index"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var files []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		files = append(files, sc.Text())
	}
	return files, sc.Err()
}
