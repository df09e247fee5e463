//go:build !linux

package linkfarm

import "errors"

// copyTimes is unsupported here: os.Chtimes would follow the link and
// modify the target instead.
func copyTimes(_, _ string) error {
	return errors.New("setting symlink times is not supported on this platform")
}
