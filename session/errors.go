package session

import "fmt"

type errUnsupportedVersion int

func (v errUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported persisted session version %d", int(v))
}
