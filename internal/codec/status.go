package codec

import "strconv"

// ReturnCode is a raw status code reported by the telemetry source.
type ReturnCode uint32

const (
	ReturnSuccess                 ReturnCode = 0
	ReturnUninitialized           ReturnCode = 1
	ReturnInvalidArgument         ReturnCode = 2
	ReturnNotSupported            ReturnCode = 3
	ReturnNoPermission            ReturnCode = 4
	ReturnNotFound                ReturnCode = 6
	ReturnInsufficientSize        ReturnCode = 7
	ReturnTimeout                 ReturnCode = 10
	ReturnGPUIsLost               ReturnCode = 15
	ReturnNoData                  ReturnCode = 21
	ReturnArgumentVersionMismatch ReturnCode = 25
	ReturnNotReady                ReturnCode = 27
	ReturnUnknown                 ReturnCode = 999
)

var returnNames = map[ReturnCode]string{
	ReturnSuccess:                 "success",
	ReturnUninitialized:           "uninitialized",
	ReturnInvalidArgument:         "invalid_argument",
	ReturnNotSupported:            "not_supported",
	ReturnNoPermission:            "no_permission",
	ReturnNotFound:                "not_found",
	ReturnInsufficientSize:        "insufficient_size",
	ReturnTimeout:                 "timeout",
	ReturnGPUIsLost:               "gpu_is_lost",
	ReturnNoData:                  "no_data",
	ReturnArgumentVersionMismatch: "argument_version_mismatch",
	ReturnNotReady:                "not_ready",
	ReturnUnknown:                 "unknown",
}

// String names common codes; other codes render numerically and keep
// their raw value.
func (c ReturnCode) String() string {
	if name, ok := returnNames[c]; ok {
		return name
	}
	return "return_" + strconv.FormatUint(uint64(c), 10)
}

// Check converts a raw status into nil on success or a FieldUnavailableError.
func Check(code ReturnCode) error {
	if code == ReturnSuccess {
		return nil
	}
	return FieldUnavailableError{Code: code}
}
