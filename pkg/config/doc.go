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

/*
Package config loads preproc configuration files.

	            +-------------+
	            |   Config    |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	+----------+ +----------+ +----------+

The format follows the file extension. A file named .preprocrc is read as
YAML first and HCL second. HCL files can read environment variables through
the env object:

	tag = env.PREPROC_TAG

	select {
	  allow_errors = true
	}

	remove {
	  path_test = ["src/**"]
	}

An operation runs only when its block is present, even if the block is
empty. path_test takes one rule or a list; see preproc.ParsePathTest for the
rule syntax.
*/
package config
