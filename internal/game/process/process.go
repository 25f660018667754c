// Package process locates the game process and opens a read-only handle on
// its memory.
package process

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/memory"
	"github.com/sjzar/trophylodge/internal/game/model"
	linux_glance "github.com/sjzar/trophylodge/internal/game/process/linux/glance"
)

// Handle is a read-only capability over one running process.
type Handle interface {
	memory.Source

	// Process describes the attached process. BaseAddress is the primary
	// module base.
	Process() *model.Process

	// Running reports whether the process still exists.
	Running(ctx context.Context) bool

	Close() error
}

// Finder locates a process by executable name. A missing process is reported
// as errors.ErrGameNotFound, which is the normal state while the game is not
// running.
type Finder interface {
	Find(ctx context.Context, name string) (Handle, error)
}

type OSFinder struct{}

func NewFinder() *OSFinder {
	return &OSFinder{}
}

func (f *OSFinder) Find(ctx context.Context, name string) (Handle, error) {
	processes, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.ListProcessFailed(err)
	}

	for _, p := range processes {
		procName, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		var exe, argv0 string
		// best effort, may be denied for processes of other users
		if v, err := p.ExeWithContext(ctx); err == nil {
			exe = v
		}
		if args, err := p.CmdlineSliceWithContext(ctx); err == nil && len(args) > 0 {
			argv0 = args[0]
		}
		if !matchName(name, procName, exe, argv0) {
			continue
		}

		proc := &model.Process{
			PID:      uint32(p.Pid),
			Name:     name,
			ExePath:  exe,
			Platform: platform(argv0),
			Status:   model.StatusOnline,
		}
		if exe != "" {
			proc.DataDir = filepath.Dir(exe)
		}

		h, err := open(proc)
		if err != nil {
			log.Debug().Err(err).Uint32("pid", proc.PID).Msg("open process failed")
			return nil, err
		}
		log.Debug().
			Uint32("pid", proc.PID).
			Str("exe", proc.ExePath).
			Str("platform", proc.Platform).
			Str("base", memory.Address(proc.BaseAddress).String()).
			Msg("process attached")
		return h, nil
	}

	return nil, errors.ErrGameNotFound
}

// matchName compares name with the reported process name, then with the base
// names of the executable and argv[0]. On Linux the reported name is cut to
// 15 bytes, and under Wine argv[0] is a Windows path.
func matchName(name, procName string, paths ...string) bool {
	if procName == name {
		return true
	}
	for _, p := range paths {
		if p != "" && strings.EqualFold(linux_glance.ModuleName(p), name) {
			return true
		}
	}
	return false
}

func platform(argv0 string) string {
	switch {
	case runtime.GOOS == "windows":
		return model.PlatformWindows
	case runtime.GOOS == "linux" && strings.Contains(argv0, `\`):
		return model.PlatformWine
	case runtime.GOOS == "linux":
		return model.PlatformLinux
	}
	return runtime.GOOS
}

func running(ctx context.Context, pid uint32) bool {
	ok, err := process.PidExistsWithContext(ctx, int32(pid))
	if err != nil {
		log.Debug().Err(err).Uint32("pid", pid).Msg("check process failed")
		return true
	}
	return ok
}
