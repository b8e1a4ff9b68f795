// Package protocol defines the messages exchanged between a playback controller
// and a player engine, their JSON wire form, and the limits the engine applies
// to requested values.
//
// Commands flow controller to engine and carry an "action" tag. Statuses flow
// engine to controller and carry a "status" tag. Each message carries exactly
// one variant; there is no batching.
package protocol
