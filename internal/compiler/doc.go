// Package compiler turns schema descriptors into the compiled model that both
// codec strategies consume.
//
// CompileEntity resolves every field to a wire type and derives its Full and
// Delta representations. CompileEnum checks variants and prepares the
// ordinal conversions. Compile does both for a whole schema, concurrently,
// and orders entities so that referenced entities come first. Any failure is
// fatal for the whole schema: no partial program is returned.
package compiler
