package tdq

import "tdq/util"

func IsRangeError(err error) bool {
	return errorCode(err) == util.OutOfRange
}

func IsOrderingError(err error) bool {
	return errorCode(err) == util.Ordering
}

func errorCode(err error) util.Code {
	switch err := err.(type) {
	case *util.QueueError:
		return err.Code()
	}
	return -1
}
