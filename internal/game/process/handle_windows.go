//go:build windows

package process

import (
	"context"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/memory"
	"github.com/sjzar/trophylodge/internal/game/model"
)

type windowsHandle struct {
	proc   *model.Process
	handle windows.Handle
}

func open(proc *model.Process) (Handle, error) {
	base, err := moduleBase(proc.PID, proc.Name)
	if err != nil {
		return nil, err
	}
	h, err := windows.OpenProcess(windows.PROCESS_VM_READ|windows.PROCESS_QUERY_LIMITED_INFORMATION, false, proc.PID)
	if err != nil {
		return nil, errors.OpenProcessFailed(err)
	}
	proc.BaseAddress = base
	return &windowsHandle{proc: proc, handle: h}, nil
}

func moduleBase(pid uint32, name string) (uint64, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, pid)
	if err != nil {
		return 0, errors.OpenProcessFailed(err)
	}
	defer windows.CloseHandle(snap)

	var me windows.ModuleEntry32
	me.Size = uint32(unsafe.Sizeof(me))
	if err := windows.Module32First(snap, &me); err != nil {
		return 0, errors.OpenProcessFailed(err)
	}
	for {
		if windows.UTF16ToString(me.Module[:]) == name {
			return uint64(me.ModBaseAddr), nil
		}
		if err := windows.Module32Next(snap, &me); err != nil {
			break
		}
	}
	return 0, errors.ErrModuleNotFound
}

func (h *windowsHandle) Process() *model.Process {
	return h.proc
}

func (h *windowsHandle) ReadMemory(addr memory.Address, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.InvalidArg("size")
	}
	buf := make([]byte, size)
	var n uintptr
	if err := windows.ReadProcessMemory(h.handle, uintptr(addr), &buf[0], uintptr(size), &n); err != nil {
		return nil, errors.ReadMemoryFailed(uint64(addr), err)
	}
	if int(n) < size {
		return buf[:n], errors.ReadMemoryFailed(uint64(addr), errors.ErrShortRead)
	}
	return buf, nil
}

func (h *windowsHandle) Running(ctx context.Context) bool {
	return running(ctx, h.proc.PID)
}

func (h *windowsHandle) Close() error {
	h.proc.Status = model.StatusOffline
	return windows.CloseHandle(h.handle)
}
