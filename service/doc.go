// Package service orchestrates the matching core — engine, sequencer,
// and event journal. It is the only write entry point: every transport
// (TCP gateway, Kafka feed) submits commands through Service.Submit,
// which also serializes access to the single-writer core.
package service
