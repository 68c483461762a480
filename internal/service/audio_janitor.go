package service

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// AudioJanitor periodically sweeps the audio scratch directory and removes
// files older than MaxAge. Downloads are normally cleaned up inline after
// transcription; the janitor catches files orphaned by crashes.
type AudioJanitor struct {
	Dir      string
	MaxAge   time.Duration
	Interval time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewAudioJanitor(dir string) *AudioJanitor {
	return &AudioJanitor{
		Dir:      dir,
		MaxAge:   time.Hour,
		Interval: 15 * time.Minute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called.
func (j *AudioJanitor) Start() {
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.Interval)
		defer ticker.Stop()

		log.Printf("audio janitor: sweeping %s every %s", j.Dir, j.Interval)
		for {
			select {
			case <-ticker.C:
				j.Sweep()
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and waits for the current sweep to finish.
func (j *AudioJanitor) Stop() {
	close(j.stop)
	<-j.done
}

// Sweep removes stale audio files and returns how many were deleted.
func (j *AudioJanitor) Sweep() int {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		log.Printf("audio janitor: read %s: %v", j.Dir, err)
		return 0
	}

	cutoff := time.Now().Add(-j.MaxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isAudioFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("audio janitor: remove %s: %v", path, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("audio janitor: removed %d stale file(s)", removed)
	}
	return removed
}

func isAudioFile(name string) bool {
	switch filepath.Ext(name) {
	case ".mp3", ".m4a", ".opus", ".wav", ".webm":
		return true
	}
	return false
}
