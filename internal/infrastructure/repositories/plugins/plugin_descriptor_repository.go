package plugins

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

const (
	descriptorDir = "META-INF/gradle-plugins/"
	descriptorExt = ".properties"
)

// ZipPluginDescriptorRepository discovers plugin ids from the descriptor
// files packaged in plugin archives. An archive is a jar/zip file or an
// exploded classes directory.
type ZipPluginDescriptorRepository struct{}

// NewPluginDescriptorRepository creates a plugin descriptor scanner.
func NewPluginDescriptorRepository() repositories.PluginDescriptorRepository {
	return &ZipPluginDescriptorRepository{}
}

// DiscoverPlugins returns the union of plugin ids found in archives. Unreadable
// archives are skipped and reported in the joined error, next to the ids that
// could be read.
func (r *ZipPluginDescriptorRepository) DiscoverPlugins(
	ctx context.Context,
	archives []string,
) (map[string]struct{}, error) {
	available := make(map[string]struct{})
	var errs []error

	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return available, err
		}

		ids, err := scanArchive(archive)
		if err != nil {
			logger.Warnf("Could not scan plugin archive %q: %v", archive, err)
			errs = append(errs, fmt.Errorf("plugin archive %q: %w", archive, err))
			continue
		}
		logger.Debugf("Found %d plugin(s) in %q", len(ids), archive)
		for _, id := range ids {
			available[id] = struct{}{}
		}
	}

	return available, errors.Join(errs...)
}

func scanArchive(archive string) ([]string, error) {
	info, err := os.Stat(archive)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scanDirectory(archive)
	}

	reader, err := zip.OpenReader(archive)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var ids []string
	for _, file := range reader.File {
		if id, ok := PluginIDFromEntry(file.Name); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func scanDirectory(root string) ([]string, error) {
	var ids []string
	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, current)
		if relErr != nil {
			return relErr
		}
		if id, ok := PluginIDFromEntry(filepath.ToSlash(rel)); ok {
			ids = append(ids, id)
		}
		return nil
	})
	return ids, err
}

// PluginIDFromEntry maps "META-INF/gradle-plugins/<id>.properties" to <id>.
func PluginIDFromEntry(name string) (string, bool) {
	idx := strings.Index(name, descriptorDir)
	if idx < 0 || !strings.HasSuffix(name, descriptorExt) {
		return "", false
	}
	rest := name[idx+len(descriptorDir):]
	if strings.Contains(rest, "/") {
		return "", false
	}
	id := strings.TrimSuffix(path.Base(rest), descriptorExt)
	if id == "" {
		return "", false
	}
	return id, true
}
