// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apk extracts the web content embedded in an application package.
package apk

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hybridflow/hybridflow/analysis/config"
	"github.com/hybridflow/hybridflow/internal/formatutil"
)

// AssetsDir is the top-level directory of the package holding the web content
const AssetsDir = "assets"

// WebSuffixes are the suffixes of the extracted asset files
var WebSuffixes = []string{".html", ".js"}

// ErrArchiveIO is wrapped by every error returned when the package cannot be read or an asset cannot be written
var ErrArchiveIO = errors.New("archive i/o failure")

// IsWebAsset returns true if the archive entry name is a web page or a script under the assets directory.
func IsWebAsset(name string) bool {
	first, _, found := strings.Cut(name, "/")
	if !found || first != AssetsDir {
		return false
	}
	for _, suffix := range WebSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// ExtractAssets copies the web assets of the application package at appPath into destDir. Each asset keeps its path
// in the archive: assets/www/index.html is written to destDir/assets/www/index.html. The archive entries are visited
// once, in the order they are stored.
//
// Extraction stops at the first error, which wraps ErrArchiveIO. The files extracted before the error are left in
// destDir. Returns the number of extracted files.
func ExtractAssets(logger *config.LogGroup, appPath string, destDir string) (int, error) {
	r, err := zip.OpenReader(appPath)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return 0, fmt.Errorf("%w: could not open %s: %v", ErrArchiveIO, appPath, err)
	}
	defer r.Close()

	n := 0
	for _, f := range r.File {
		if !IsWebAsset(f.Name) {
			logger.Tracef("skipping %s\n", formatutil.Sanitize(f.Name))
			continue
		}
		target, err := targetPath(destDir, f.Name)
		if err != nil {
			return n, err
		}
		if err := extractFile(f, target); err != nil {
			return n, err
		}
		logger.Debugf("extracted %s\n", formatutil.Sanitize(f.Name))
		n++
	}
	return n, nil
}

// targetPath returns the path of the entry name under destDir. Names that would be written outside of destDir are
// rejected.
func targetPath(destDir string, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: entry %q is outside of %s", ErrArchiveIO, name, destDir)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("%w: could not create directory for %s: %v", ErrArchiveIO, f.Name, err)
	}
	in, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: could not read entry %s: %v", ErrArchiveIO, f.Name, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("%w: could not create %s: %v", ErrArchiveIO, target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: could not write %s: %v", ErrArchiveIO, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: could not write %s: %v", ErrArchiveIO, target, err)
	}
	return nil
}
