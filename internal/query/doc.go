// Package query narrows a snapshot of records to the view a user asked for.
//
// A Filter combines a free-text search with categorical selectors and tag
// constraints. Tag inclusion is conjunctive (a record must carry every
// included tag) while exclusion is disjunctive (any excluded tag removes the
// record). Everything here is pure: no storage access, no ordering. Callers
// sort the result, newest first by default.
package query
