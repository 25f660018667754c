package errors

import "net/http"

var (
	ErrGameNotFound        = New(nil, http.StatusNotFound, "game process not found")
	ErrModuleNotFound      = New(nil, http.StatusNotFound, "game module not found")
	ErrUnsupportedPlatform = New(nil, http.StatusNotImplemented, "platform not supported")
	ErrAddressInvalid      = New(nil, http.StatusBadRequest, "address invalid")
	ErrShortRead           = New(nil, http.StatusInternalServerError, "short memory read")
	ErrGrindNotFound       = New(nil, http.StatusNotFound, "grind not found")
)

func ListProcessFailed(err error) *Error {
	return New(err, http.StatusInternalServerError, "list processes failed")
}

func OpenProcessFailed(err error) *Error {
	return New(err, http.StatusInternalServerError, "open process failed")
}

func ReadMemoryFailed(addr uint64, err error) *Error {
	return Newf(err, http.StatusInternalServerError, "read memory at 0x%X failed", addr)
}

func DBOpenFailed(err error) *Error {
	return New(err, http.StatusInternalServerError, "open database failed")
}

func DBOperationFailed(err error) *Error {
	return New(err, http.StatusInternalServerError, "database operation failed")
}

func InvalidArg(name string) *Error {
	return Newf(nil, http.StatusBadRequest, "invalid argument: %s", name)
}

func ConfigLoadFailed(err error) *Error {
	return New(err, http.StatusInternalServerError, "load config failed")
}
