// Package translations assembles per-locale translation forms for
// translatable entities. See pkg/assembler for the builder, pkg/metadata for
// entity descriptors and pkg/subscriber for writing submitted values back
// into translation records.
package translations
