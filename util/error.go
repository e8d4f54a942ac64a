package util

import (
	"bytes"
	"fmt"
)

type Code int8

const (
	OK Code = iota
	OutOfRange
	Ordering
)

type QueueError struct {
	code Code
	msg  string
	msg2 string
}

func NewError(code Code, msg string, msg2 string) error {
	if code == OK {
		panic("code cannot be OK")
	}
	return &QueueError{
		code: code,
		msg:  msg,
		msg2: msg2,
	}
}

func OutOfRangeError1(msg string) error {
	return OutOfRangeError2(msg, "")
}

func OutOfRangeError2(msg string, msg2 string) error {
	return NewError(OutOfRange, msg, msg2)
}

func OrderingError1(msg string) error {
	return OrderingError2(msg, "")
}

func OrderingError2(msg string, msg2 string) error {
	return NewError(Ordering, msg, msg2)
}

func (e *QueueError) Error() string {
	return e.String()
}

func (e *QueueError) String() string {
	buf := bytes.NewBufferString("")
	switch e.code {
	case OK:
		fmt.Fprint(buf, "")
	case OutOfRange:
		fmt.Fprint(buf, "Out of range: ")
	case Ordering:
		fmt.Fprint(buf, "Ordering: ")
	default:
		fmt.Fprintf(buf, "Unknown code(%d): ", e.code)
	}
	if e.msg2 != "" {
		fmt.Fprintf(buf, "%s: %s", e.msg, e.msg2)
	} else {
		fmt.Fprintf(buf, "%s", e.msg)
	}
	return buf.String()
}

func (e *QueueError) Code() Code {
	return e.code
}
