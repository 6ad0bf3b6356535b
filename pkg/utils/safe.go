package utils

import "io"

// SafeClose closes closer and logs the error if any. It is for defer
// statements where the close error can not be returned.
func SafeClose(closer io.Closer) {
	if err := closer.Close(); err != nil {
		Logger().Warn("failed to close", ErrLog(err))
	}
}
