//go:build !linux && !windows

package process

import (
	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/model"
)

func open(proc *model.Process) (Handle, error) {
	return nil, errors.ErrUnsupportedPlatform
}
