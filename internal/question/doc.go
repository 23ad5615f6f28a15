// Package question defines the records stored in the question bank.
//
// A Record is either a Paper 1 question (one question image answered by a
// multiple-choice token or an answer image) or a Paper 2 question (an ordered
// list of labelled parts, each with its own question and answer image). Both
// variants share the same tag and exam metadata: keyword and topic sets,
// difficulty, exam year and month, and a free-text question number.
//
// Records are plain values. Validate reports the invariants the store
// enforces on every write; everything else in the repository treats records
// as immutable snapshots and copies them with Clone before changing them.
package question
