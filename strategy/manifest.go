/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package strategy

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"dirpx.dev/dmx/apis"
	dmxerrors "dirpx.dev/dmx/errors"
	"dirpx.dev/dmx/manifest"
)

// ManifestOption configures the manifest strategy.
type ManifestOption func(*manifestStrategy)

// WithLogger sets the logger used to report manifest loading.
func WithLogger(l *slog.Logger) ManifestOption {
	return func(s *manifestStrategy) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewManifestStrategy creates a strategy that treats string sources as paths
// to manifest files. Functions referenced by manifests are looked up in
// funcs.
func NewManifestStrategy(funcs manifest.Funcs, opts ...ManifestOption) apis.Strategy {
	s := &manifestStrategy{funcs: funcs, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// manifestStrategy loads extensions from the filesystem.
type manifestStrategy struct {
	funcs  manifest.Funcs
	logger *slog.Logger
}

// Ensure manifestStrategy implements apis.Strategy.
var _ apis.Strategy = (*manifestStrategy)(nil)

// TryResolve handles every string. A path that does not exist, cannot be
// parsed or refers to unknown functions is an invalid extension.
func (s *manifestStrategy) TryResolve(src any) (apis.Extension, bool, error) {
	path, ok := src.(string)
	if !ok {
		return nil, false, nil
	}
	logger := s.logger.With("path", path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Manifest not found")
		}
		return nil, true, dmxerrors.NewInvalidExtension(src, err)
	}
	if info.IsDir() {
		return nil, true, dmxerrors.NewInvalidExtension(src, fmt.Errorf("%s is a directory", path))
	}

	logger.Debug("Loading manifest")
	m, err := manifest.Load(path)
	if err != nil {
		return nil, true, dmxerrors.NewInvalidExtension(src, err)
	}
	ext, err := m.Extension(s.funcs)
	if err != nil {
		return nil, true, dmxerrors.NewInvalidExtension(src, err)
	}

	logger.Info("Manifest loaded", "properties", len(m.Properties), "methods", len(m.Methods))
	return ext, true, nil
}
