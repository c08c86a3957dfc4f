package constants

import (
	"errors"
	"net/http"
)

// Viper keys.
const (
	ViperConfigEnv          = "CERTENERGY_CONFIG"
	ViperEnvPrefix          = "CERTENERGY"
	ViperHTTPAddrKey        = "http.addr"
	ViperAllowOriginsKey    = "http.allow_origins"
	ViperDBDSNKey           = "db.dsn"
	ViperCatalogURLKey      = "catalog.base_url"
	ViperCatalogRetriesKey  = "catalog.max_retries"
	ViperCatalogTimeoutKey  = "catalog.timeout"
	ViperRecalcWorkersKey   = "recalc.workers"
	ViperSecretKey          = "secret"
	ViperLogLevelKey        = "log.level"
	ViperShutdownTimeoutKey = "http.shutdown_timeout"
)

const (
	CookieKeySecretToken = "secret_token"
	HeaderKeySecretToken = "X-Secret-Token"
	TokenSubjectAdmin    = "admin"
)

type CodedError struct {
	code int
	err  error
}

func NewCodedError(code int, err error) *CodedError {
	return &CodedError{code: code, err: err}
}

func (e *CodedError) Error() string {
	return e.err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.err
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound         = NewCodedError(http.StatusNotFound, errors.New("not found"))
	ErrUnauthorized       = NewCodedError(http.StatusUnauthorized, errors.New("unauthorized"))
	ErrBadRequest         = NewCodedError(http.StatusBadRequest, errors.New("bad request"))
	ErrProjectNotFound    = NewCodedError(http.StatusNotFound, errors.New("project not found"))
	ErrUnknownEnclosure   = NewCodedError(http.StatusNotFound, errors.New("unknown enclosure"))
	ErrUnknownAxis        = NewCodedError(http.StatusBadRequest, errors.New("unknown selection axis"))
	ErrUnknownReport      = NewCodedError(http.StatusNotFound, errors.New("unknown report"))
	ErrCatalogUnavailable = NewCodedError(http.StatusServiceUnavailable, errors.New("energy catalog unavailable"))
)
