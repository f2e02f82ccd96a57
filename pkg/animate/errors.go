package animate

import "errors"

var (
	ErrNoFrames        = errors.New("animate: no frames")
	ErrDelayCount      = errors.New("animate: delay count does not match frame count")
	ErrInvalidDisposal = errors.New("animate: disposal method out of range")
	ErrHeaderWritten   = errors.New("animate: header already written")
	ErrNoHeader        = errors.New("animate: header not written")
	ErrFinished        = errors.New("animate: animation already finished")
)
