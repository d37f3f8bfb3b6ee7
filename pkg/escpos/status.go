package escpos

import "fmt"

// Status is the decoded result of the real-time DLE EOT status queries.
type Status struct {
	Online       bool `json:"online"`
	CoverOpen    bool `json:"coverOpen"`
	PaperOut     bool `json:"paperOut"`
	PaperNearEnd bool `json:"paperNearEnd"`
	DrawerOpen   bool `json:"drawerOpen"`
	FeedButton   bool `json:"feedButton"`
	Error        bool `json:"error"`
}

// validStatusByte checks the fixed bits of a DLE EOT reply. Real replies
// have bits 0 and 7 clear and bits 1 and 4 set; anything else is stray
// print data or line noise.
func validStatusByte(b byte) bool {
	return b&0x93 == 0x12
}

// parsePrinterStatus decodes a DLE EOT 1 reply into the status fields it
// carries.
func parsePrinterStatus(b byte, s *Status) {
	s.Online = b&0x08 == 0
	s.DrawerOpen = b&0x04 != 0
	s.FeedButton = b&0x40 != 0
}

// parseOfflineStatus decodes a DLE EOT 2 reply.
func parseOfflineStatus(b byte, s *Status) {
	s.CoverOpen = b&0x04 != 0
	s.Error = b&0x40 != 0
	if b&0x20 != 0 {
		s.PaperOut = true
	}
}

// parsePaperStatus decodes a DLE EOT 4 reply.
func parsePaperStatus(b byte, s *Status) {
	s.PaperNearEnd = b&0x0C != 0
	if b&0x60 != 0 {
		s.PaperOut = true
	}
}

// QueryStatus runs the three real-time status queries over the transport
// and merges the replies. A reply byte that fails the fixed-bit check
// aborts with ErrBadStatusReply: on printers that do not implement DLE EOT
// the read times out instead, which surfaces as a transport error.
func QueryStatus(t *Transport) (Status, error) {
	var s Status

	probes := []struct {
		kind  byte
		parse func(byte, *Status)
	}{
		{1, parsePrinterStatus},
		{2, parseOfflineStatus},
		{4, parsePaperStatus},
	}

	for _, probe := range probes {
		resp, err := t.Query(rawStatusRequest(probe.kind), 1)
		if err != nil {
			return Status{}, fmt.Errorf("status query %d: %w", probe.kind, err)
		}
		if !validStatusByte(resp[0]) {
			return Status{}, fmt.Errorf("%w: 0x%02X", ErrBadStatusReply, resp[0])
		}
		probe.parse(resp[0], &s)
	}

	return s, nil
}
