// Package report summarizes the quality of one alignment run.
//
// A Report counts how source and reference tokens were paired, aggregates
// match costs, scores substitutions with Jaro-Winkler similarity, and compares
// the vocabularies of transcript and reference. Reports are written as YAML
// or JSON next to the cue file and logged at the end of each run.
package report
