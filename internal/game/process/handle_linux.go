//go:build linux

package process

import (
	"context"

	"golang.org/x/sys/unix"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/memory"
	"github.com/sjzar/trophylodge/internal/game/model"
	linux_glance "github.com/sjzar/trophylodge/internal/game/process/linux/glance"
)

type linuxHandle struct {
	proc *model.Process
}

func open(proc *model.Process) (Handle, error) {
	regions, err := linux_glance.GetVmmap(proc.PID)
	if err != nil {
		return nil, err
	}
	base, ok := linux_glance.ModuleBase(regions, proc.Name)
	if !ok {
		return nil, errors.ErrModuleNotFound
	}
	proc.BaseAddress = base
	return &linuxHandle{proc: proc}, nil
}

func (h *linuxHandle) Process() *model.Process {
	return h.proc
}

func (h *linuxHandle) ReadMemory(addr memory.Address, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.InvalidArg("size")
	}
	buf := make([]byte, size)
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(size)
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: size}}

	n, err := unix.ProcessVMReadv(int(h.proc.PID), local, remote, 0)
	if err != nil {
		return nil, errors.ReadMemoryFailed(uint64(addr), err)
	}
	if n < size {
		return buf[:n], errors.ReadMemoryFailed(uint64(addr), errors.ErrShortRead)
	}
	return buf, nil
}

func (h *linuxHandle) Running(ctx context.Context) bool {
	return running(ctx, h.proc.PID)
}

func (h *linuxHandle) Close() error {
	h.proc.Status = model.StatusOffline
	return nil
}
