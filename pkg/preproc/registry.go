// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preproc

import (
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// IdentityName is the name the identity processor is registered under
const IdentityName = "identity"

var (
	registryMu sync.RWMutex
	// 🗺️ processors holds the named tag processors
	processors = map[string]TagProcessor{}
)

func init() {
	Register(IdentityName, Identity)
}

// 📝 Register makes a tag processor available by name, replacing any
// processor already registered under it
func Register(name string, proc TagProcessor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	processors[name] = proc
}

// 🎯 Lookup returns the tag processor registered under name
func Lookup(name string) (TagProcessor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	proc, ok := processors[name]
	if !ok {
		return nil, errors.Errorf("no tag processor registered as %q", name)
	}
	return proc, nil
}

// Names lists the registered processor names in order
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(processors))
	for name := range processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
