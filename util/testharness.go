package util

import (
	"os"
	"reflect"
	"strconv"
	"testing"
)

func AssertTrue(condition bool, s string, t *testing.T) {
	t.Helper()
	if !condition {
		t.Errorf("Test [%s] failed, condition is false.\n", s)
	}
}

func AssertFalse(condition bool, s string, t *testing.T) {
	t.Helper()
	if condition {
		t.Errorf("Test [%s] failed, condition is true.\n", s)
	}
}

func AssertEqual(expected, actual interface{}, s string, t *testing.T) {
	t.Helper()
	type1 := reflect.TypeOf(expected)
	type2 := reflect.TypeOf(actual)
	if type1.Kind() != type2.Kind() {
		t.Errorf("Test [%s] failed, expected type: [%s], actual: [%s].\n", s, type1.String(), type2.String())
		return
	}
	if type1.Kind() == reflect.Struct || type1.Kind() == reflect.Slice || type1.Kind() == reflect.Array {
		if !reflect.DeepEqual(expected, actual) {
			t.Errorf("Test [%s] failed, expected equal: [%v], actual: [%v].\n", s, expected, actual)
		}
	} else {
		if expected != actual {
			t.Errorf("Test [%s] failed, expected equal: [%v], actual: [%v].\n", s, expected, actual)
		}
	}
}

func AssertNotEqual(v1, v2 interface{}, s string, t *testing.T) {
	t.Helper()
	type1 := reflect.TypeOf(v1)
	type2 := reflect.TypeOf(v2)
	if type1.Kind() != type2.Kind() {
		t.Errorf("Test [%s] failed, expected type: [%s], actual: [%s].\n", s, type1.String(), type2.String())
	}
	if type1.Kind() == reflect.Struct || type1.Kind() == reflect.Slice || type1.Kind() == reflect.Array {
		if reflect.DeepEqual(v1, v2) {
			t.Errorf("Test [%s] failed, expected not equal: [%v].\n", s, v1)
		}
	} else {
		if v1 == v2 {
			t.Errorf("Test [%s] failed, expected not equal: [%v].\n", s, v1)
		}
	}
}

func AssertNotError(err error, s string, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Errorf("Test [%s] failed, error is [%v].\n", s, err)
	}
}

func AssertError(err error, s string, t *testing.T) {
	t.Helper()
	if err == nil {
		t.Errorf("Test [%s] failed, error is nil.\n", s)
	}
}

func RandomSeed() (result int) {
	env, ok := os.LookupEnv("TEST_RANDOM_SEED")
	if ok && env != "" {
		var err error
		result, err = strconv.Atoi(env)
		if result < 0 || err != nil {
			result = 301
		}
	} else {
		result = 301
	}
	return
}
