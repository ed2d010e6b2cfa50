package setting

import (
	"fmt"
	"strconv"
	"strings"
)

// Parses ON/TRUE/OFF/FALSE in any case
func Switch(arg string) (on bool, err error) {
	switch strings.ToUpper(strings.TrimSpace(arg)) {
	case "ON", "TRUE":
		on = true
	case "OFF", "FALSE":
		on = false
	default:
		err = fmt.Errorf("%w: expected ON/OFF/TRUE/FALSE, got '%s'", ErrConfiguration, arg)
	}
	return
}

// Parses an integer and enforces inclusive bounds
func Integer(arg string, min, max int) (value int, err error) {
	value, err = strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		err = fmt.Errorf("%w: '%s' is not an integer", ErrConfiguration, arg)
		return
	}
	if value < min || value > max {
		err = fmt.Errorf("%w: %d out of range [%d, %d]", ErrConfiguration, value, min, max)
		return
	}
	return
}

// Parses an unsigned integer in any base accepted by strconv (0x.., 0b.., decimal)
func Mask(arg string) (value uint64, err error) {
	value, err = strconv.ParseUint(strings.TrimSpace(arg), 0, 64)
	if err != nil {
		err = fmt.Errorf("%w: '%s' is not a valid group mask", ErrConfiguration, arg)
	}
	return
}

// Parses a float and enforces inclusive bounds
func Float(arg string, min, max float64) (value float64, err error) {
	value, err = strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		err = fmt.Errorf("%w: '%s' is not a number", ErrConfiguration, arg)
		return
	}
	if value < min || value > max {
		err = fmt.Errorf("%w: %g out of range [%g, %g]", ErrConfiguration, value, min, max)
		return
	}
	return
}

// Error for an option the adapter does not recognise
func Unknown(adapter, option string) (err error) {
	err = fmt.Errorf("%w: %s output - unknown option: %s", ErrConfiguration, adapter, option)
	return
}

// Wraps a value error with the option it belongs to
func Invalid(adapter, option string, cause error) (err error) {
	err = fmt.Errorf("%s output - option %s: %w", adapter, option, cause)
	return
}
