// Package device reports coarse host capabilities. The only consumer
// is model-variant selection; nothing here is on a correctness path.
package device

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Info describes the host platform.
type Info struct {
	Platform string
	RAMMB    int // 0 when undetectable
}

// Prober supplies device information.
type Prober interface {
	Probe() Info
}

// HostProber reads capabilities from the running host.
type HostProber struct{}

func (HostProber) Probe() Info {
	return Info{
		Platform: runtime.GOOS,
		RAMMB:    totalRAMMB(),
	}
}

// totalRAMMB reads MemTotal from /proc/meminfo. Returns 0 on platforms
// without it or on any read failure.
func totalRAMMB() int {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0
		}
		return kb / 1024
	}
	return 0
}

// StaticProber returns a fixed Info. Useful in tests.
type StaticProber struct {
	Info Info
}

func (p StaticProber) Probe() Info { return p.Info }
