package escpos

import "errors"

var (
	ErrNotConnected    = errors.New("escpos: not connected")
	ErrUnknownConnType = errors.New("escpos: unknown connection type")
	ErrBadStatusReply  = errors.New("escpos: malformed status reply")
	ErrEmptyPayload    = errors.New("escpos: empty payload")
)
