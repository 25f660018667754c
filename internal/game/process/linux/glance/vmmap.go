package linux_glance

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sjzar/trophylodge/internal/errors"
)

const CommandProcMaps = "/proc/%d/maps"

type MemRegion struct {
	RegionType   string
	Start        uint64
	End          uint64
	VSize        uint64 // Size in bytes
	Permissions  string
	RegionDetail string
}

func (r MemRegion) Readable() bool {
	return strings.HasPrefix(r.Permissions, "r")
}

func GetVmmap(pid uint32) ([]MemRegion, error) {
	mapsFile := fmt.Sprintf(CommandProcMaps, pid)
	content, err := os.ReadFile(mapsFile)
	if err != nil {
		return nil, errors.OpenProcessFailed(err)
	}

	return LoadVmmap(string(content))
}

// Format: address           perms offset  dev   inode   pathname
// Example: 55f4c0a00000-55f4c0a02000 r--p 00000000 08:01 1048576 /usr/bin/cat
var mapsLine = regexp.MustCompile(`^([0-9a-f]+)-([0-9a-f]+)\s+([rwxps-]+)\s+[0-9a-f]+\s+[0-9a-f]+:[0-9a-f]+\s+\d+\s*(.*)$`)

func LoadVmmap(output string) ([]MemRegion, error) {
	var regions []MemRegion

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		matches := mapsLine.FindStringSubmatch(line)
		if len(matches) < 5 {
			continue
		}
		start, err := strconv.ParseUint(matches[1], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(matches[2], 16, 64)
		if err != nil {
			continue
		}
		pathname := strings.TrimSpace(matches[4])

		regionType := "[mapped]"
		switch {
		case pathname == "":
			regionType = "[anonymous]"
		case strings.Contains(pathname, "[heap]"):
			regionType = "[heap]"
		case strings.Contains(pathname, "[stack]"):
			regionType = "[stack]"
		case strings.Contains(pathname, ".so"):
			regionType = "[library]"
		}

		regions = append(regions, MemRegion{
			RegionType:   regionType,
			Start:        start,
			End:          end,
			VSize:        end - start,
			Permissions:  matches[3],
			RegionDetail: pathname,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return regions, nil
}

// ModuleBase returns the start of the lowest readable mapping backed by a file
// whose base name is module. Windows style paths, as seen under Wine, are handled.
func ModuleBase(regions []MemRegion, module string) (uint64, bool) {
	var base uint64
	found := false
	for _, region := range regions {
		if region.RegionDetail == "" || !region.Readable() {
			continue
		}
		if !strings.EqualFold(ModuleName(region.RegionDetail), module) {
			continue
		}
		if !found || region.Start < base {
			base = region.Start
			found = true
		}
	}
	return base, found
}

// ModuleName is the base name of path, which may use either separator.
func ModuleName(path string) string {
	if i := strings.LastIndex(path, `\`); i >= 0 {
		path = path[i+1:]
	}
	return filepath.Base(path)
}
