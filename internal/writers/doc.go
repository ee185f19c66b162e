// Package writers turns scored comparisons into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV score rows, pairing blocks, JSONL).
//   • porthodom stays domain-only; pipeline stays orchestration-only.
//   • JSONL goes through pkg/api (v1) for a stable wire format.
package writers
