// Package organizer wires the classifier, the conflict resolver and the
// mover into a Pipeline, and runs that pipeline over the top level of the
// watch directories.
//
// The Pipeline is shared by the batch Organizer and the live watcher. It
// remembers every destination it has claimed during a run, so a dry run
// predicts the same renames (doc_1.txt, doc_2.txt, ...) a real run would
// perform.
package organizer
