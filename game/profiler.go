package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"time"
)

// Profiler captures a CPU profile when the frame rate tanks, so slow
// frames in the field leave something to analyze. Only armed in debug
// builds.
type Profiler struct {
	mu          sync.Mutex
	isProfiling bool
	lastCapture time.Time
	cooldown    time.Duration
	duration    time.Duration
	dir         string
}

// NewProfiler creates a profiler writing into ./profiles
func NewProfiler() *Profiler {
	dir := "profiles"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("profiles dir unavailable: %v", err)
	}
	return &Profiler{
		cooldown: 15 * time.Second,
		duration: 3 * time.Second,
		dir:      dir,
	}
}

// CaptureOnDrop starts an asynchronous CPU capture tagged with the
// conditions that triggered it. Repeated drops inside the cooldown are
// ignored.
func (p *Profiler) CaptureOnDrop(fps float64, enemies, particles int) {
	p.mu.Lock()
	if p.isProfiling || time.Since(p.lastCapture) < p.cooldown {
		p.mu.Unlock()
		return
	}
	p.isProfiling = true
	p.lastCapture = time.Now()
	p.mu.Unlock()

	name := fmt.Sprintf("fps-drop-%s-fps%.0f-e%d-p%d.cpu.prof",
		time.Now().Format("20060102-150405"), fps, enemies, particles)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		path := filepath.Join(p.dir, name)
		file, err := os.Create(path)
		if err != nil {
			log.Printf("profile create failed: %v", err)
			return
		}
		defer file.Close()

		if err := pprof.StartCPUProfile(file); err != nil {
			log.Printf("profile start failed: %v", err)
			return
		}
		time.Sleep(p.duration)
		pprof.StopCPUProfile()
		log.Printf("slow-frame profile saved to %s", path)
	}()
}
