// Package config loads the generator configuration file, codegen.yaml.
//
// Every key is optional:
//
//	package: restricted            # overrides the schema package
//	output_dir: ./restricted       # where generated files are written
//	runtime_import: codec-generator/wire
//	file_suffix: _codec.go
//	generate_comments: true        # wire id and type after every field
//	allow_map_entry_overlap: false # let map entities use field ids 1 and 2
//	concurrency: 8                 # descriptors compiled at once
//
// Command-line flags override file values.
package config
