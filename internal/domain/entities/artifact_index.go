package entities

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	logger "github.com/sirupsen/logrus"
)

// DefaultSourceCacheSize is the number of artifact lookups kept by a new index.
const DefaultSourceCacheSize = 1024

// ErrModuleReentry is returned when a module's artifacts are recorded after the
// module was already processed (successfully or not) in the same report run.
var ErrModuleReentry = errors.New("module artifacts already processed")

// ModuleStatus is the indexing state of one module.
type ModuleStatus int32

const (
	ModuleNotProcessed ModuleStatus = iota
	ModuleProcessed
	ModuleProcessedWithError
)

func (s ModuleStatus) String() string {
	switch s {
	case ModuleNotProcessed:
		return "not_processed"
	case ModuleProcessed:
		return "processed"
	case ModuleProcessedWithError:
		return "processed_with_error"
	}
	return fmt.Sprintf("ModuleStatus(%d)", int32(s))
}

// SourceSetRecord is what the index knows about the source set behind an artifact.
type SourceSetRecord struct {
	ModuleID     string
	Name         string
	SourceDirs   []string
	OutputPath   string
	ArtifactPath string
}

// ArtifactIndex maps build outputs back to the source sets that produced them.
//
// Every module contributes at most once per report run. Status changes are
// compare-and-set per module, and a module's entries become visible to readers
// all at once when RecordModule publishes them.
type ArtifactIndex struct {
	statuses sync.Map // module id -> *atomic.Int32

	mu        sync.RWMutex
	artifacts map[string]SourceSetRecord // artifact path -> record
	outputs   map[string]string          // output path -> artifact path

	// nil when caching is disabled
	sources *lru.Cache[string, []string]
}

// NewArtifactIndex creates an empty index. A cacheSize <= 0 disables the
// lookup cache.
func NewArtifactIndex(cacheSize int) *ArtifactIndex {
	index := &ArtifactIndex{
		artifacts: make(map[string]SourceSetRecord),
		outputs:   make(map[string]string),
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, []string](cacheSize)
		if err != nil {
			logger.Warnf("Failed to create the source lookup cache, continuing without it: %v", err)
		} else {
			index.sources = cache
		}
	}
	return index
}

func (it *ArtifactIndex) state(moduleID string) *atomic.Int32 {
	value, _ := it.statuses.LoadOrStore(moduleID, new(atomic.Int32))
	return value.(*atomic.Int32)
}

// Status returns the current indexing state of a module.
func (it *ArtifactIndex) Status(moduleID string) ModuleStatus {
	value, ok := it.statuses.Load(moduleID)
	if !ok {
		return ModuleNotProcessed
	}
	return ModuleStatus(value.(*atomic.Int32).Load())
}

// RecordModule indexes the source sets of a module. It fails with ErrModuleReentry
// when the module was already recorded or marked as failed, leaving the index untouched.
func (it *ArtifactIndex) RecordModule(moduleID string, sourceSets []SourceSet) error {
	state := it.state(moduleID)
	if !state.CompareAndSwap(int32(ModuleNotProcessed), int32(ModuleProcessed)) {
		return fmt.Errorf("%w: module %q is %s", ErrModuleReentry, moduleID, ModuleStatus(state.Load()))
	}

	batch := make([]SourceSetRecord, 0, len(sourceSets))
	for _, sourceSet := range sourceSets {
		record := SourceSetRecord{
			ModuleID:     moduleID,
			Name:         sourceSet.Name,
			SourceDirs:   cleanPaths(sourceSet.SourceDirs),
			OutputPath:   cleanPath(sourceSet.OutputPath),
			ArtifactPath: cleanPath(sourceSet.ArtifactPath),
		}
		if record.ArtifactPath == "" {
			record.ArtifactPath = record.OutputPath
		}
		if record.ArtifactPath == "" {
			logger.Debugf("[%s] Source set %q has no output, skipping", moduleID, sourceSet.Name)
			continue
		}
		batch = append(batch, record)
	}

	it.publish(batch)
	logger.Debugf("[%s] Indexed %d source set(s)", moduleID, len(batch))
	return nil
}

// publish makes a whole batch visible under one write lock. Cache entries are
// evicted while the lock is held so that no reader can re-add a stale miss.
func (it *ArtifactIndex) publish(batch []SourceSetRecord) {
	it.mu.Lock()
	defer it.mu.Unlock()

	for _, record := range batch {
		if previous, ok := it.artifacts[record.ArtifactPath]; ok {
			if previous.ModuleID != record.ModuleID {
				logger.Debugf(
					"Artifact %q of module %q replaces the one from module %q",
					record.ArtifactPath, record.ModuleID, previous.ModuleID,
				)
			}
			it.forget(previous)
		}
		it.artifacts[record.ArtifactPath] = record
		if record.OutputPath != "" {
			it.outputs[record.OutputPath] = record.ArtifactPath
		}
		if it.sources != nil {
			it.sources.Remove(record.ArtifactPath)
			it.sources.Remove(record.OutputPath)
		}
	}
}

// forget drops the output mapping and cached lookups of a replaced record.
// Callers must hold it.mu for writing.
func (it *ArtifactIndex) forget(previous SourceSetRecord) {
	if previous.OutputPath != "" && it.outputs[previous.OutputPath] == previous.ArtifactPath {
		delete(it.outputs, previous.OutputPath)
	}
	if it.sources != nil {
		it.sources.Remove(previous.ArtifactPath)
		it.sources.Remove(previous.OutputPath)
	}
}

// MarkModuleFailed records that collecting the module's source sets failed.
// Marking an already failed module again is a no-op. A module that was
// recorded successfully keeps its status and ErrModuleReentry is returned.
func (it *ArtifactIndex) MarkModuleFailed(moduleID string) error {
	state := it.state(moduleID)
	if state.CompareAndSwap(int32(ModuleNotProcessed), int32(ModuleProcessedWithError)) {
		return nil
	}
	current := ModuleStatus(state.Load())
	if current == ModuleProcessedWithError {
		return nil
	}
	return fmt.Errorf("%w: module %q is %s", ErrModuleReentry, moduleID, current)
}

// FindSourcesForArtifacts returns the union of the source directories behind the
// given artifact paths, in first-seen order. Unknown paths contribute nothing.
func (it *ArtifactIndex) FindSourcesForArtifacts(paths []string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, path := range paths {
		for _, dir := range it.findSources(cleanPath(path)) {
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			result = append(result, dir)
		}
	}
	return result
}

func (it *ArtifactIndex) findSources(path string) []string {
	if path == "" {
		return nil
	}

	it.mu.RLock()
	defer it.mu.RUnlock()

	if it.sources != nil {
		if cached, ok := it.sources.Get(path); ok {
			return slices.Clone(cached)
		}
	}

	var sources []string
	if record, ok := it.lookup(path); ok {
		sources = record.SourceDirs
	}
	if it.sources != nil {
		it.sources.Add(path, sources)
	}
	return slices.Clone(sources)
}

// lookup resolves a path as an artifact first and as an output directory second.
// Callers must hold it.mu.
func (it *ArtifactIndex) lookup(path string) (SourceSetRecord, bool) {
	if record, ok := it.artifacts[path]; ok {
		return record, true
	}
	if artifact, ok := it.outputs[path]; ok {
		record, found := it.artifacts[artifact]
		return record, found
	}
	return SourceSetRecord{}, false
}

// FindSourceSetByArtifact returns the record registered for an artifact path.
func (it *ArtifactIndex) FindSourceSetByArtifact(path string) (SourceSetRecord, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	record, ok := it.artifacts[cleanPath(path)]
	record.SourceDirs = slices.Clone(record.SourceDirs)
	return record, ok
}

// FindArtifactByOutputDir returns the artifact produced from a source set output directory.
func (it *ArtifactIndex) FindArtifactByOutputDir(path string) (string, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	artifact, ok := it.outputs[cleanPath(path)]
	return artifact, ok
}

// Len returns the number of indexed artifacts.
func (it *ArtifactIndex) Len() int {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return len(it.artifacts)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func cleanPaths(paths []string) []string {
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		if cleaned := cleanPath(path); cleaned != "" {
			result = append(result, cleaned)
		}
	}
	return result
}
