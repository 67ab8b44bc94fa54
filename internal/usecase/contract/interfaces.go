package usecasecontract

import "time"

// IAppLogger is the logging interface used across usecases.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// IConfigProvider exposes the configuration values usecases depend on.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetUploadURLExpiry() time.Duration
}

// IValidator validates user-supplied values against local rules.
type IValidator interface {
	ValidateEmail(email string) error
	ValidateUsername(username string) error
	ValidatePasswordStrength(password string) error
}
