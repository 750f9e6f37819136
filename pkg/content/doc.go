// Package content describes the published country content and the rules for
// mutating it.
//
// Content is a tree of JSON files rooted at the configured content directory:
//
//	<lang>/<country>/meta.json
//	<lang>/<country>/description.json
//	<lang>/<country>/section-headers.json
//	<lang>/<country>/<section>/<section>.index.json
//	<lang>/<country>/<section>/<id>.json
//	<lang>/<country>/<section>/<parentId>/<childId>.json
//	<lang>/velum/velum.index.json
//
// Each collection is described by a Section (or, for records nested inside a
// parent's detail file, a Child). Descriptors carry the required fields, the
// summary fields duplicated into the index, and the defaults of a freshly
// created record, so one repository implementation serves every section.
//
// The repository itself lives in pkg/server/store/file; this package holds
// the descriptors, record preparation and the errors shared by both sides.
package content
