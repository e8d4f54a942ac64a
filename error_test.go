package tdq

import (
	"errors"
	"testing"

	"tdq/util"
)

func TestErrorKinds(t *testing.T) {
	err := util.OutOfRangeError1("seek past tail")
	util.AssertTrue(IsRangeError(err), "range error recognized", t)
	util.AssertFalse(IsOrderingError(err), "range error is not ordering", t)

	err = util.OrderingError1("no revision at or before target")
	util.AssertTrue(IsOrderingError(err), "ordering error recognized", t)
	util.AssertFalse(IsRangeError(err), "ordering error is not range", t)
}

func TestForeignError(t *testing.T) {
	err := errors.New("something else")
	util.AssertFalse(IsRangeError(err), "foreign error is not range", t)
	util.AssertFalse(IsOrderingError(err), "foreign error is not ordering", t)
	util.AssertFalse(IsRangeError(nil), "nil is not range", t)
}
