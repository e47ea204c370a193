// Package graphio provides serialization types for course dependency graphs.
//
// This package defines the canonical wire format for coursegraph's graph
// data, used for JSON files, API responses, caching, and snapshot storage.
//
// # Architecture
//
// The package sits at the serialization boundary between the internal
// representation and external formats:
//
//   - [Catalog], [Course], [Requirement]: wire types (this package)
//   - catalog.Graph: internal graph representation
//
// Use [FromGraph]/[ToGraph] to convert between them. The format is
// human-readable and round-trip faithful: build → export → re-import
// produces an identical graph.
//
// # Wire Format
//
// Graphs use a simple course-list JSON format; requirement trees are
// discriminated by which field is present:
//
//	{
//	  "courses": [
//	    {"id": "CS201", "requirement": {}},
//	    {"id": "CS301", "requirement": {"course": "CS201"}},
//	    {"id": "CS401", "requirement": {"any_of": [{"course": "CS301"}, {"course": "CS302"}]}}
//	  ],
//	  "edges": [{"from": "CS301", "to": "CS201"}]
//	}
//
// An empty requirement object means "no prerequisites". The bson tags mirror
// the json tags so the same types serve the Mongo snapshot store.
//
// # Concurrency
//
// All functions are safe for concurrent use; they never mutate their inputs.
package graphio
