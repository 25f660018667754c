package model

type Process struct {
	PID         uint32
	Name        string
	ExePath     string
	DataDir     string
	BaseAddress uint64
	Platform    string
	Status      string
}

const (
	PlatformWindows = "windows"
	PlatformLinux   = "linux"
	PlatformWine    = "wine" // Windows build under Wine or Proton
)

const (
	StatusOffline = "offline"
	StatusOnline  = "online"
)
