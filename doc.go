/*
Package binlog implements a codec for the MySQL binary log (binlog) wire
and file format, version 4 (MySQL 5.0+).

It decodes a stream of length-prefixed, typed events produced by a MySQL
server and can write those events back, preserving the on-wire byte layout
where the format allows it. Framing, checksum detection and the
per-event-type post-header lengths are all parameterized by the stream's
Format Description Event (FDE), which this package tracks for the caller.

to read events from a file:

	f, err := os.Open("binlog.000001")
	if err != nil {
		return err
	}
	defer f.Close()

	bf, err := NewBinlogFile(4, f)
	if err != nil {
		return err
	}
	for {
		ev, err := bf.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		payload, err := ev.ReadPayload(nil)
		if err != nil {
			return err
		}
		fmt.Printf("%s @ %d: %#v\n", ev.Header.EventType.Value(), ev.Header.LogPos, payload)
	}

Row values are exposed as raw column images plus TableMapEvent metadata;
turning those into typed SQL values is left to a sibling layer. GTID, XA
Prepare, View Change, Transaction Context, Previous GTIDs and Partial
Update Rows payloads are preserved as opaque byte runs: round-trip works,
but this package does not interpret their contents.
*/
package binlog
